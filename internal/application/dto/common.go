package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalizar aplica os limites: página mínima 1, per_page entre 1 e 1000
// (padrão 50).
func (p *PageRequest) Normalizar() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 50
	}
	if p.PerPage > 1000 {
		p.PerPage = 1000
	}
}

// Offset devolve o deslocamento correspondente à página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse metadados de página nas respostas.
type PageResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// ErrorResponse corpo de erro HTTP. Detalhes carrega informação estruturada
// adicional quando o erro a possui (ex. códigos de produtos sem acumulador).
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Detalhes any    `json:"detalhes,omitempty"`
}
