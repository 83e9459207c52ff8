package dto

import "github.com/shopspring/decimal"

// ResumoVendasResponse totais por condição de pagamento.
type ResumoVendasResponse struct {
	Competencia  string          `json:"competencia,omitempty"`
	TotalVendas  decimal.Decimal `json:"total_vendas"`
	VendasAVista decimal.Decimal `json:"vendas_a_vista"`
	VendasAPrazo decimal.Decimal `json:"vendas_a_prazo"`
}

// VendaPorData total vendido em um dia (YYYY-MM-DD).
type VendaPorData struct {
	Data  string          `json:"data"`
	Total decimal.Decimal `json:"total"`
}

// GrupoAcumuladorResponse totais de um acumulador com abertura por data.
type GrupoAcumuladorResponse struct {
	Codigo        string          `json:"codigo"`
	Descricao     string          `json:"descricao"`
	Total         decimal.Decimal `json:"total"`
	VendasPorData []VendaPorData  `json:"vendas_por_data"`
}

// RelatorioVendasResponse relatório de vendas rateado por acumulador.
type RelatorioVendasResponse struct {
	Competencia  string                    `json:"competencia,omitempty"`
	Acumuladores []GrupoAcumuladorResponse `json:"acumuladores"`
	TotalGeral   decimal.Decimal           `json:"total_geral"`
}

// TotalCfopResponse total vendido por CFOP.
type TotalCfopResponse struct {
	Cfop  string          `json:"cfop"`
	Total decimal.Decimal `json:"total"`
}

// RelatorioCfopResponse relatório de vendas agrupado pelo CFOP do
// acumulador de cada produto.
type RelatorioCfopResponse struct {
	Competencia string              `json:"competencia,omitempty"`
	Cfops       []TotalCfopResponse `json:"cfops"`
	TotalGeral  decimal.Decimal     `json:"total_geral"`
}

// ApuracaoCfopResponse totais do analítico C190 como declarados no arquivo.
type ApuracaoCfopResponse struct {
	Competencia string              `json:"competencia,omitempty"`
	Cfops       []TotalCfopResponse `json:"cfops"`
}

// CompetenciasResponse períodos YYYY-MM com vendas, mais recente primeiro.
type CompetenciasResponse struct {
	Items []string `json:"items"`
}

// EstatisticasResponse visão geral dos dados importados de uma empresa.
type EstatisticasResponse struct {
	TotalProdutos         int             `json:"total_produtos"`
	ProdutosSemAcumulador int             `json:"produtos_sem_acumulador"`
	TotalDocumentos       int             `json:"total_documentos"`
	TotalVendas           int             `json:"total_vendas"`
	ValorTotalVendas      decimal.Decimal `json:"valor_total_vendas"`
	PrimeiraVenda         string          `json:"primeira_venda,omitempty"`
	UltimaVenda           string          `json:"ultima_venda,omitempty"`
}
