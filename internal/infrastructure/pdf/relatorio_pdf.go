// Package pdf implementa a versão impressa do relatório de vendas por
// acumulador, entregue ao contador junto do JSON.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ  │  Competência                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por acumulador:                                            │
//	│    CÓDIGO — descrição                              total    │
//	│      data ........................................ total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GERAL                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/relatorio"
)

var _ usecase.RelatorioPDFGenerator = (*RelatorioPDFGenerator)(nil)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RelatorioPDFGenerator implementa usecase.RelatorioPDFGenerator com Maroto v2.
type RelatorioPDFGenerator struct{}

// NewRelatorioPDFGenerator constrói o gerador.
func NewRelatorioPDFGenerator() *RelatorioPDFGenerator { return &RelatorioPDFGenerator{} }

// GerarRelatorioVendas renderiza o relatório e devolve os bytes do PDF.
func (g *RelatorioPDFGenerator) GerarRelatorioVendas(
	empresa *entity.Empresa,
	competencia string,
	rel *relatorio.RelatorioVendas,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Vendas por Acumulador", true).
		WithAuthor(empresa.RazaoSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(empresa, competencia))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, grupo := range rel.Acumuladores {
		m.AddRows(grupoHeaderRow(grupo))
		for _, dia := range grupo.VendasPorData {
			m.AddRows(diaRow(dia))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(totalGeralRow(rel.TotalGeral))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: razão social + CNPJ (esq) e competência (dir).
func headerRow(empresa *entity.Empresa, competencia string) core.Row {
	if competencia == "" {
		competencia = "todas as competências"
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(empresa.RazaoSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+formatCNPJ(empresa.CNPJ), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("RELATÓRIO DE VENDAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Competência: "+competencia, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// grupoHeaderRow: código + descrição do acumulador e o total do grupo.
func grupoHeaderRow(grupo relatorio.GrupoAcumulador) core.Row {
	titulo := grupo.Codigo
	if grupo.Descricao != "" {
		titulo += " — " + grupo.Descricao
	}
	return row.New(8).Add(
		col.New(9).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(3).Add(text.New("R$ "+formatValor(grupo.Total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}

// diaRow: abertura por data dentro do acumulador.
func diaRow(dia relatorio.TotalData) core.Row {
	return row.New(5).Add(
		col.New(9).Add(text.New(dia.Data, props.Text{
			Size: 8, Top: 1, Left: 4, Color: colorGray,
		})),
		col.New(3).Add(text.New("R$ "+formatValor(dia.Total), props.Text{
			Size: 8, Align: align.Right, Top: 1, Color: colorGray,
		})),
	)
}

// totalGeralRow: fechamento do relatório.
func totalGeralRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL GERAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New("R$ "+formatValor(total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatValor formata o decimal na convenção brasileira: ponto de milhar e
// vírgula decimal. Ex: 1234567.8 -> "1.234.567,80".
func formatValor(d decimal.Decimal) string {
	s := d.StringFixed(2)
	inteiro, decimais := s[:len(s)-3], s[len(s)-2:]
	negativo := false
	if len(inteiro) > 0 && inteiro[0] == '-' {
		negativo = true
		inteiro = inteiro[1:]
	}
	n := len(inteiro)
	buf := make([]byte, 0, n+n/3+4)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, inteiro[i])
	}
	out := string(buf) + "," + decimais
	if negativo {
		out = "-" + out
	}
	return out
}

// formatCNPJ aplica a máscara 00.000.000/0000-00 quando o CNPJ tem 14 dígitos.
func formatCNPJ(cnpj string) string {
	if len(cnpj) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", cnpj[0:2], cnpj[2:5], cnpj[5:8], cnpj[8:12], cnpj[12:14])
}
