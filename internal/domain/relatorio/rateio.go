// Package relatorio: cálculo puro dos relatórios de vendas. O rateio distribui
// as despesas acessórias do documento (frete, seguro, diferenças de
// arredondamento) proporcionalmente ao valor de cada item, de modo que a soma
// dos itens rateados feche com o valor total da nota. As agregações por
// acumulador e por CFOP partem dos mesmos itens rateados, portanto os dois
// relatórios fecham entre si por construção.
package relatorio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ItemVenda linha de venda enriquecida com o contexto do documento e da
// classificação, pronta para o rateio.
type ItemVenda struct {
	NumDocumento        string
	Serie               string
	Data                time.Time
	CodigoItem          string
	DescricaoItem       string
	Acumulador          string
	AcumuladorDescricao string
	Cfop                string
	ValorItem           decimal.Decimal // valor do item com desconto aplicado
	ValorDocumento      decimal.Decimal // valor total da nota
}

// ItemRateado item com a parcela de despesas acessórias atribuída.
type ItemRateado struct {
	ItemVenda
	DespesasRateadas decimal.Decimal
	ValorFinal       decimal.Decimal
}

// TotalData total vendido em um dia (YYYY-MM-DD).
type TotalData struct {
	Data  string
	Total decimal.Decimal
}

// GrupoAcumulador totais de um acumulador com a abertura por data.
type GrupoAcumulador struct {
	Codigo        string
	Descricao     string
	Total         decimal.Decimal
	VendasPorData []TotalData
}

// RelatorioVendas relatório agregado por acumulador.
type RelatorioVendas struct {
	Acumuladores []GrupoAcumulador
	TotalGeral   decimal.Decimal
}

// TotalCfop total vendido por CFOP.
type TotalCfop struct {
	Cfop  string
	Total decimal.Decimal
}

// Resumo totais por condição de pagamento sobre documentos de saída.
type Resumo struct {
	TotalVendas  decimal.Decimal
	VendasAVista decimal.Decimal
	VendasAPrazo decimal.Decimal
}

// Estatisticas visão geral dos dados importados de uma empresa.
type Estatisticas struct {
	TotalProdutos         int
	ProdutosSemAcumulador int
	TotalDocumentos       int
	TotalVendas           int
	ValorTotalVendas      decimal.Decimal
	PrimeiraVenda         *time.Time
	UltimaVenda           *time.Time
}

// CalcularRateio distribui as despesas acessórias de cada documento entre os
// seus itens, proporcionalmente ao valor de cada um. Documentos cujo total é
// menor ou igual à soma dos itens não têm despesas a ratear; nesses casos o
// valor final é o próprio valor do item.
func CalcularRateio(itens []ItemVenda) []ItemRateado {
	type chaveDoc struct{ num, serie string }

	somas := make(map[chaveDoc]decimal.Decimal)
	for _, it := range itens {
		k := chaveDoc{it.NumDocumento, it.Serie}
		somas[k] = somas[k].Add(it.ValorItem)
	}

	rateados := make([]ItemRateado, 0, len(itens))
	for _, it := range itens {
		soma := somas[chaveDoc{it.NumDocumento, it.Serie}]
		rateada := decimal.Zero
		valorFinal := it.ValorItem
		if soma.IsPositive() {
			despesas := it.ValorDocumento.Sub(soma)
			if despesas.IsPositive() {
				rateada = despesas.Mul(it.ValorItem).Div(soma).Round(2)
				valorFinal = it.ValorItem.Add(rateada)
			}
		}
		rateados = append(rateados, ItemRateado{
			ItemVenda:        it,
			DespesasRateadas: rateada,
			ValorFinal:       valorFinal,
		})
	}
	return rateados
}

// AgruparPorAcumulador agrega os itens rateados por acumulador, com abertura
// por data. Acumuladores ordenados por código, datas em ordem crescente.
func AgruparPorAcumulador(itens []ItemRateado) *RelatorioVendas {
	porAcumulador := make(map[string]*GrupoAcumulador)
	porData := make(map[string]map[string]decimal.Decimal)

	rel := &RelatorioVendas{TotalGeral: decimal.Zero}
	for _, it := range itens {
		g, ok := porAcumulador[it.Acumulador]
		if !ok {
			g = &GrupoAcumulador{Codigo: it.Acumulador, Descricao: it.AcumuladorDescricao, Total: decimal.Zero}
			porAcumulador[it.Acumulador] = g
			porData[it.Acumulador] = make(map[string]decimal.Decimal)
		}
		g.Total = g.Total.Add(it.ValorFinal)
		dia := it.Data.Format("2006-01-02")
		porData[it.Acumulador][dia] = porData[it.Acumulador][dia].Add(it.ValorFinal)
		rel.TotalGeral = rel.TotalGeral.Add(it.ValorFinal)
	}

	codigos := make([]string, 0, len(porAcumulador))
	for codigo := range porAcumulador {
		codigos = append(codigos, codigo)
	}
	sort.Strings(codigos)

	for _, codigo := range codigos {
		g := porAcumulador[codigo]
		dias := make([]string, 0, len(porData[codigo]))
		for dia := range porData[codigo] {
			dias = append(dias, dia)
		}
		sort.Strings(dias)
		for _, dia := range dias {
			g.VendasPorData = append(g.VendasPorData, TotalData{Data: dia, Total: porData[codigo][dia]})
		}
		rel.Acumuladores = append(rel.Acumuladores, *g)
	}
	return rel
}

// AgruparPorCfop agrega os itens rateados pelo CFOP do acumulador de cada
// produto, em ordem crescente de CFOP.
func AgruparPorCfop(itens []ItemRateado) []TotalCfop {
	totais := make(map[string]decimal.Decimal)
	for _, it := range itens {
		totais[it.Cfop] = totais[it.Cfop].Add(it.ValorFinal)
	}

	cfops := make([]string, 0, len(totais))
	for cfop := range totais {
		cfops = append(cfops, cfop)
	}
	sort.Strings(cfops)

	out := make([]TotalCfop, 0, len(cfops))
	for _, cfop := range cfops {
		out = append(out, TotalCfop{Cfop: cfop, Total: totais[cfop]})
	}
	return out
}
