package dto

// SugestoesRequest entrada do cálculo de sugestões de classificação.
type SugestoesRequest struct {
	EmpresaID string `json:"empresa_id"`
	Limite    int    `json:"limite"` // produtos sem acumulador analisados; 0 usa o padrão
}

// SugestaoResponse proposta de acumulador para um produto não classificado.
// Transiente: nada é gravado até a aprovação explícita.
type SugestaoResponse struct {
	CodigoItem         string `json:"codigo_item"`
	DescricaoItem      string `json:"descricao_item"`
	NCM                string `json:"ncm,omitempty"`
	AcumuladorSugerido string `json:"acumulador_sugerido"`
	Similaridade       int    `json:"similaridade"`
	Motivo             string `json:"motivo"`
}

// SugestoesResponse resultado do cálculo de sugestões.
type SugestoesResponse struct {
	Analisados int                `json:"analisados"`
	Items      []SugestaoResponse `json:"items"`
}

// AplicarSugestoesRequest aprovação explícita: o cliente devolve os pares
// que aceitou. Rejeitar uma sugestão é simplesmente não a enviar.
type AplicarSugestoesRequest struct {
	EmpresaID string          `json:"empresa_id"`
	Items     []AplicacaoItem `json:"items"`
}

// AplicacaoItem um par produto/acumulador aprovado.
type AplicacaoItem struct {
	CodigoItem string `json:"codigo_item"`
	Acumulador string `json:"acumulador"`
}

// FalhaAplicacao item cuja aplicação falhou; o acumulador anterior do
// produto permanece intacto.
type FalhaAplicacao struct {
	CodigoItem string `json:"codigo_item"`
	Motivo     string `json:"motivo"`
}

// AplicarSugestoesResponse resultado da aprovação, item a item.
type AplicarSugestoesResponse struct {
	Aplicadas int              `json:"aplicadas"`
	Falhas    []FalhaAplicacao `json:"falhas,omitempty"`
}

// LadoInconsistencia um dos produtos de um par divergente.
type LadoInconsistencia struct {
	CodigoItem    string `json:"codigo_item"`
	DescricaoItem string `json:"descricao_item"`
	Acumulador    string `json:"acumulador"`
}

// InconsistenciaResponse par de produtos muito parecidos com acumuladores
// diferentes. ProdutoA carrega sempre o menor código.
type InconsistenciaResponse struct {
	ProdutoA     LadoInconsistencia `json:"produto_a"`
	ProdutoB     LadoInconsistencia `json:"produto_b"`
	Similaridade int                `json:"similaridade"`
	NcmIgual     bool               `json:"ncm_igual"`
}

// InconsistenciasResponse resultado da varredura de inconsistências.
type InconsistenciasResponse struct {
	Analisados int                      `json:"analisados"`
	Items      []InconsistenciaResponse `json:"items"`
}
