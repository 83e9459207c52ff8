package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Indicadores de pagamento do registro C100.
const (
	PagamentoAVista = "0"
	PagamentoAPrazo = "1"
	PagamentoOutros = "2"
)

// DocumentoFiscal representa um registro C100 de saída (ind_oper = 1).
// Único por empresa, número e série; vendas e apurações referenciam o documento.
type DocumentoFiscal struct {
	ID             string
	EmpresaID      string
	NumDocumento   string
	Serie          string
	Data           time.Time
	ValorTotal     decimal.Decimal
	IndOper        string // 1 = saída
	IndPagamento   string // 0 = à vista, 1 = a prazo, 2 = outros
	DataImportacao time.Time
}

// Competencia devolve o período YYYY-MM da emissão do documento.
func (d *DocumentoFiscal) Competencia() string {
	return d.Data.Format("2006-01")
}
