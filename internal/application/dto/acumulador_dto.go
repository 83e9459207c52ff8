package dto

import "time"

// CreateAcumuladorRequest entrada para criar um acumulador.
type CreateAcumuladorRequest struct {
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
	Cfop      string `json:"cfop"`
}

// UpdateAcumuladorRequest entrada para atualizar um acumulador existente.
type UpdateAcumuladorRequest struct {
	Descricao *string `json:"descricao"`
	Cfop      *string `json:"cfop"`
}

// AcumuladorResponse saída de um acumulador.
type AcumuladorResponse struct {
	Codigo        string    `json:"codigo"`
	Descricao     string    `json:"descricao"`
	Cfop          string    `json:"cfop"`
	DataCadastro  time.Time `json:"data_cadastro"`
	DataAlteracao time.Time `json:"data_alteracao"`
}

// AcumuladorListResponse lista de acumuladores.
type AcumuladorListResponse struct {
	Items []AcumuladorResponse `json:"items"`
}

// BuscaAcumuladorResponse resultado da busca textual por descrição.
type BuscaAcumuladorResponse struct {
	Termo string               `json:"termo"`
	Items []AcumuladorResponse `json:"items"`
}
