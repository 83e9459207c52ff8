package dto

import "time"

// CreateCfopRequest entrada para cadastrar um CFOP.
type CreateCfopRequest struct {
	Cfop      string `json:"cfop"`
	Descricao string `json:"descricao"`
}

// UpdateCfopRequest entrada para atualizar a descrição de um CFOP.
type UpdateCfopRequest struct {
	Descricao string `json:"descricao"`
}

// CfopResponse saída de um CFOP.
type CfopResponse struct {
	Cfop         string    `json:"cfop"`
	Descricao    string    `json:"descricao"`
	DataCadastro time.Time `json:"data_cadastro"`
}

// CfopListResponse lista de CFOPs.
type CfopListResponse struct {
	Items []CfopResponse `json:"items"`
}
