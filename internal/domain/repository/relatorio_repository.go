package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/relatorio"

// RelatorioRepository porto de leitura para relatórios e consultas agregadas.
// Competencia vazia significa todos os períodos.
type RelatorioRepository interface {
	// Competencias lista os períodos YYYY-MM com vendas, do mais recente
	// para o mais antigo.
	Competencias(empresaID string) ([]string, error)

	// ProdutosSemAcumulador conta os produtos ativos com vendas no período e
	// sem acumulador, devolvendo uma amostra de códigos em ordem crescente.
	ProdutosSemAcumulador(empresaID, competencia string, amostra int) (total int, codigos []string, err error)

	// ItensVenda devolve as linhas de venda do período com o contexto do
	// documento e da classificação, insumo do rateio.
	ItensVenda(empresaID, competencia string) ([]relatorio.ItemVenda, error)

	// ResumoVendas totais por condição de pagamento dos documentos de saída.
	ResumoVendas(empresaID, competencia string) (*relatorio.Resumo, error)

	// ApuracaoPorCfop totais do analítico C190 por CFOP, como declarados.
	ApuracaoPorCfop(empresaID, competencia string) ([]relatorio.TotalCfop, error)

	// Estatisticas contagens e datas extremas dos dados importados.
	Estatisticas(empresaID string) (*relatorio.Estatisticas, error)
}
