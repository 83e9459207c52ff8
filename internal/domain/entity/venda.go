package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venda representa um item C170 de um documento de saída. ValorUnitario e
// ValorTotal já vêm derivados do parser (valor do item e desconto aplicado);
// o rateio de despesas acessórias é calculado apenas nos relatórios.
type Venda struct {
	ID            string
	DocumentoID   string
	EmpresaID     string
	Data          time.Time
	CodigoItem    string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
	ValorDesconto decimal.Decimal
	BaseICMS      decimal.Decimal
	ValorICMS     decimal.Decimal
	AliquotaICMS  decimal.Decimal
}
