package entity

import "github.com/shopspring/decimal"

// ApuracaoCfop guarda o registro analítico C190 tal como declarado no
// arquivo: totais por combinação CST/CFOP/alíquota de cada documento.
// Serve de trilha de auditoria, independente da classificação por acumulador.
type ApuracaoCfop struct {
	ID            string
	DocumentoID   string
	CstICMS       string
	Cfop          string
	AliquotaICMS  decimal.Decimal
	ValorOperacao decimal.Decimal
	BaseICMS      decimal.Decimal
	ValorICMS     decimal.Decimal
}
