package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProdutoResponse saída de um produto do catálogo.
type ProdutoResponse struct {
	ID            string          `json:"id"`
	EmpresaID     string          `json:"empresa_id"`
	CodigoItem    string          `json:"codigo_item"`
	DescricaoItem string          `json:"descricao_item"`
	Unidade       string          `json:"unidade"`
	NCM           string          `json:"ncm"`
	Acumulador    string          `json:"acumulador"`
	AliquotaICMS  decimal.Decimal `json:"aliquota_icms"`
	CEST          string          `json:"cest,omitempty"`
	CodBarras     string          `json:"cod_barras,omitempty"`
	Ativo         bool            `json:"ativo"`
	DataCadastro  time.Time       `json:"data_cadastro"`
	DataAlteracao time.Time       `json:"data_alteracao"`
}

// ProdutoListResponse lista paginada de produtos.
type ProdutoListResponse struct {
	Items []ProdutoResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AtualizarAcumuladorRequest associa um acumulador a um único produto.
type AtualizarAcumuladorRequest struct {
	EmpresaID  string `json:"empresa_id"`
	CodigoItem string `json:"codigo_item"`
	Acumulador string `json:"acumulador"`
}

// AcumuladorEmMassaRequest associa o mesmo acumulador a vários produtos.
type AcumuladorEmMassaRequest struct {
	EmpresaID  string   `json:"empresa_id"`
	Codigos    []string `json:"codigos"`
	Acumulador string   `json:"acumulador"`
}

// AtualizacaoEmMassaResponse resultado da associação em massa: quantos
// produtos foram atualizados e quais códigos falharam.
type AtualizacaoEmMassaResponse struct {
	Atualizados int      `json:"atualizados"`
	Falhas      []string `json:"falhas,omitempty"`
}
