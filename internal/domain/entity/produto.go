package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do registro 0200 do SPED, único por empresa e
// código. O acumulador é a classificação fiscal atribuída pelo contador;
// produtos nunca são removidos fisicamente, apenas inativados.
type Produto struct {
	ID            string
	EmpresaID     string
	CodigoItem    string // código do item no arquivo (campo 2 do 0200)
	DescricaoItem string
	Unidade       string
	NCM           string
	Acumulador    string // vazio = não classificado
	AliquotaICMS  decimal.Decimal
	CEST          string
	CodBarras     string
	Ativo         bool
	DataCadastro  time.Time
	DataAlteracao time.Time
}

// Classificado informa se o produto já possui acumulador atribuído.
func (p *Produto) Classificado() bool {
	return p.Acumulador != ""
}
