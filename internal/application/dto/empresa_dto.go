package dto

import "time"

// EmpresaResponse saída de uma empresa (contribuinte).
type EmpresaResponse struct {
	ID                string    `json:"id"`
	CNPJ              string    `json:"cnpj"`
	RazaoSocial       string    `json:"razao_social"`
	InscricaoEstadual string    `json:"inscricao_estadual"`
	UF                string    `json:"uf"`
	CriadoEm          time.Time `json:"criado_em"`
}

// EmpresaListResponse lista de empresas cadastradas via importação.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
}
