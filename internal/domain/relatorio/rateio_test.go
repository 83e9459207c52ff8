package relatorio_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabilize/sped-fiscal-api/internal/domain/relatorio"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestCalcularRateio_DistribuicaoProporcional valida o rateio com o vetor de
// referência: nota de 250,00 com itens de 100,00 e 130,00 (soma 230,00).
//
//	despesas acessórias = 250,00 - 230,00 = 20,00
//	item 1: 20,00 × 100/230 =  8,70  -> valor final 108,70
//	item 2: 20,00 × 130/230 = 11,30  -> valor final 141,30
//	fechamento:            108,70 + 141,30 = 250,00 (o total da nota)
// ──────────────────────────────────────────────────────────────────────────────

func TestCalcularRateio_DistribuicaoProporcional(t *testing.T) {
	itens := []relatorio.ItemVenda{
		buildItem("123", "001", "VENDAS", "5102", "100", "250"),
		buildItem("123", "002", "VENDAS", "5102", "130", "250"),
	}

	rateados := relatorio.CalcularRateio(itens)
	require.Len(t, rateados, 2)

	assertDecimal(t, "8.70", rateados[0].DespesasRateadas, "parcela do item 1")
	assertDecimal(t, "108.70", rateados[0].ValorFinal, "valor final do item 1")
	assertDecimal(t, "11.30", rateados[1].DespesasRateadas, "parcela do item 2")
	assertDecimal(t, "141.30", rateados[1].ValorFinal, "valor final do item 2")

	soma := rateados[0].ValorFinal.Add(rateados[1].ValorFinal)
	assertDecimal(t, "250", soma, "a soma dos itens rateados fecha com o total da nota")
}

// TestCalcularRateio_SemDespesasAcessorias: quando a nota vale exatamente a
// soma dos itens não há o que ratear.
func TestCalcularRateio_SemDespesasAcessorias(t *testing.T) {
	itens := []relatorio.ItemVenda{
		buildItem("200", "001", "VENDAS", "5102", "100", "230"),
		buildItem("200", "002", "VENDAS", "5102", "130", "230"),
	}

	rateados := relatorio.CalcularRateio(itens)
	for _, r := range rateados {
		assert.True(t, r.DespesasRateadas.IsZero(), "sem despesas não há parcela rateada")
		assert.True(t, r.ValorFinal.Equal(r.ValorItem), "valor final igual ao valor do item")
	}
}

// TestCalcularRateio_NotaMenorQueItens: descontos globais deixam a nota menor
// que a soma dos itens; nesse caso o rateio não se aplica.
func TestCalcularRateio_NotaMenorQueItens(t *testing.T) {
	itens := []relatorio.ItemVenda{
		buildItem("300", "001", "VENDAS", "5102", "100", "90"),
	}

	rateados := relatorio.CalcularRateio(itens)
	require.Len(t, rateados, 1)
	assert.True(t, rateados[0].DespesasRateadas.IsZero())
	assertDecimal(t, "100", rateados[0].ValorFinal, "valor final preserva o valor do item")
}

// TestAgrupar_RelatoriosFechamEntreSi: com todos os produtos classificados, a
// soma por acumulador, a soma por CFOP e o total geral são o mesmo número.
func TestAgrupar_RelatoriosFechamEntreSi(t *testing.T) {
	itens := []relatorio.ItemVenda{
		buildItem("123", "001", "VENDAS", "5102", "100", "250"),
		buildItem("123", "002", "SERVICOS", "5933", "130", "250"),
		buildItem("124", "001", "VENDAS", "5102", "80", "80"),
		buildItem("125", "003", "REVENDA", "5405", "55.50", "60"),
	}
	rateados := relatorio.CalcularRateio(itens)

	porAcumulador := relatorio.AgruparPorAcumulador(rateados)
	porCfop := relatorio.AgruparPorCfop(rateados)

	somaAcumuladores := decimal.Zero
	for _, g := range porAcumulador.Acumuladores {
		somaAcumuladores = somaAcumuladores.Add(g.Total)
	}
	somaCfops := decimal.Zero
	for _, c := range porCfop {
		somaCfops = somaCfops.Add(c.Total)
	}

	assert.True(t, somaAcumuladores.Equal(porAcumulador.TotalGeral),
		"soma dos acumuladores (%s) deve fechar com o total geral (%s)", somaAcumuladores, porAcumulador.TotalGeral)
	assert.True(t, somaCfops.Equal(porAcumulador.TotalGeral),
		"soma dos CFOPs (%s) deve fechar com o total geral (%s)", somaCfops, porAcumulador.TotalGeral)
}

// TestAgruparPorAcumulador_OrdenacaoEAberturaPorData confere a ordenação por
// código e a abertura diária em ordem crescente.
func TestAgruparPorAcumulador_OrdenacaoEAberturaPorData(t *testing.T) {
	dia15 := time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)
	dia10 := time.Date(2023, 7, 10, 0, 0, 0, 0, time.UTC)

	itens := []relatorio.ItemVenda{
		{NumDocumento: "1", Serie: "1", Data: dia15, CodigoItem: "001", Acumulador: "VENDAS", AcumuladorDescricao: "Vendas de mercadorias", Cfop: "5102", ValorItem: dec("100"), ValorDocumento: dec("100")},
		{NumDocumento: "2", Serie: "1", Data: dia10, CodigoItem: "002", Acumulador: "ALUGUEL", AcumuladorDescricao: "Aluguel de equipamentos", Cfop: "5933", ValorItem: dec("50"), ValorDocumento: dec("50")},
		{NumDocumento: "3", Serie: "1", Data: dia10, CodigoItem: "001", Acumulador: "VENDAS", AcumuladorDescricao: "Vendas de mercadorias", Cfop: "5102", ValorItem: dec("30"), ValorDocumento: dec("30")},
	}

	rel := relatorio.AgruparPorAcumulador(relatorio.CalcularRateio(itens))

	require.Len(t, rel.Acumuladores, 2)
	assert.Equal(t, "ALUGUEL", rel.Acumuladores[0].Codigo, "acumuladores em ordem alfabética")
	assert.Equal(t, "VENDAS", rel.Acumuladores[1].Codigo)

	vendas := rel.Acumuladores[1]
	assertDecimal(t, "130", vendas.Total, "total do acumulador VENDAS")
	require.Len(t, vendas.VendasPorData, 2)
	assert.Equal(t, "2023-07-10", vendas.VendasPorData[0].Data, "datas em ordem crescente")
	assert.Equal(t, "2023-07-15", vendas.VendasPorData[1].Data)
	assertDecimal(t, "180", rel.TotalGeral, "total geral do relatório")
}

// TestAgruparPorCfop_OrdenadoPorCfop confere a agregação e a ordenação.
func TestAgruparPorCfop_OrdenadoPorCfop(t *testing.T) {
	itens := []relatorio.ItemVenda{
		buildItem("1", "001", "VENDAS", "5405", "10", "10"),
		buildItem("2", "002", "VENDAS", "5102", "20", "20"),
		buildItem("3", "003", "SERVICOS", "5102", "30", "30"),
	}

	porCfop := relatorio.AgruparPorCfop(relatorio.CalcularRateio(itens))

	require.Len(t, porCfop, 2)
	assert.Equal(t, "5102", porCfop[0].Cfop)
	assertDecimal(t, "50", porCfop[0].Total, "CFOPs iguais somam juntos")
	assert.Equal(t, "5405", porCfop[1].Cfop)
	assertDecimal(t, "10", porCfop[1].Total, "total do 5405")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func buildItem(numDoc, codigo, acumulador, cfop, valorItem, valorDoc string) relatorio.ItemVenda {
	return relatorio.ItemVenda{
		NumDocumento:   numDoc,
		Serie:          "1",
		Data:           time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		CodigoItem:     codigo,
		Acumulador:     acumulador,
		Cfop:           cfop,
		ValorItem:      dec(valorItem),
		ValorDocumento: dec(valorDoc),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, esperado string, obtido decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, obtido.Equal(decimal.RequireFromString(esperado)),
		"%s: esperado %s, obtido %s", msg, esperado, obtido)
}
