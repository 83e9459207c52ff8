package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/contabilize/sped-fiscal-api/internal/domain/relatorio"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo consultas agregadas de leitura para relatórios. A
// competência é sempre derivada da data de emissão com to_char(data,
// 'YYYY-MM') — a mesma expressão usada pela substituição na importação, de
// modo que listagem e escopo de delete nunca divergem.
type RelatorioRepo struct {
	q Querier
}

// NewRelatorioRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRelatorioRepository(q Querier) *RelatorioRepo {
	return &RelatorioRepo{q: q}
}

// Competencias períodos YYYY-MM com vendas, mais recente primeiro.
func (r *RelatorioRepo) Competencias(empresaID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT DISTINCT to_char(data, 'YYYY-MM') AS competencia
		FROM vendas WHERE empresa_id = $1
		ORDER BY competencia DESC`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list competências: %w", err)
	}
	defer rows.Close()

	var competencias []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan competência: %w", err)
		}
		competencias = append(competencias, c)
	}
	return competencias, rows.Err()
}

// ProdutosSemAcumulador conta os produtos ativos com vendas no período e sem
// acumulador. A amostra de códigos volta em ordem crescente para mensagens
// determinísticas.
func (r *RelatorioRepo) ProdutosSemAcumulador(empresaID, competencia string, amostra int) (int, []string, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT DISTINCT p.codigo_item
		FROM produtos p
		JOIN vendas v ON v.empresa_id = p.empresa_id AND v.codigo_item = p.codigo_item
		WHERE p.empresa_id = $1
		  AND p.ativo
		  AND p.acumulador IS NULL
		  AND ($2 = '' OR to_char(v.data, 'YYYY-MM') = $2)
		ORDER BY p.codigo_item`, empresaID, competencia)
	if err != nil {
		return 0, nil, fmt.Errorf("produtos sem acumulador: %w", err)
	}
	defer rows.Close()

	var total int
	var codigos []string
	for rows.Next() {
		var codigo string
		if err := rows.Scan(&codigo); err != nil {
			return 0, nil, fmt.Errorf("scan código: %w", err)
		}
		total++
		if len(codigos) < amostra {
			codigos = append(codigos, codigo)
		}
	}
	return total, codigos, rows.Err()
}

// ItensVenda linhas de venda do período com o contexto do documento e da
// classificação. Chamado sempre depois da guarda ProdutosSemAcumulador, por
// isso os JOINs de produto/acumulador são inner sem perda de linhas.
func (r *RelatorioRepo) ItensVenda(empresaID, competencia string) ([]relatorio.ItemVenda, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT d.num_documento, d.serie, v.data, v.codigo_item, p.descricao_item,
		       a.codigo, a.descricao, a.cfop, v.valor_total, d.valor_total
		FROM vendas v
		JOIN documentos_fiscais d ON d.id = v.documento_id
		JOIN produtos p ON p.empresa_id = v.empresa_id AND p.codigo_item = v.codigo_item
		JOIN acumuladores a ON a.codigo = p.acumulador
		WHERE v.empresa_id = $1
		  AND ($2 = '' OR to_char(v.data, 'YYYY-MM') = $2)
		ORDER BY d.num_documento, d.serie, v.codigo_item`, empresaID, competencia)
	if err != nil {
		return nil, fmt.Errorf("itens de venda: %w", err)
	}
	defer rows.Close()

	var itens []relatorio.ItemVenda
	for rows.Next() {
		var it relatorio.ItemVenda
		if err := rows.Scan(
			&it.NumDocumento, &it.Serie, &it.Data, &it.CodigoItem, &it.DescricaoItem,
			&it.Acumulador, &it.AcumuladorDescricao, &it.Cfop, &it.ValorItem, &it.ValorDocumento,
		); err != nil {
			return nil, fmt.Errorf("scan item de venda: %w", err)
		}
		itens = append(itens, it)
	}
	return itens, rows.Err()
}

// ResumoVendas totais por condição de pagamento dos documentos de saída.
func (r *RelatorioRepo) ResumoVendas(empresaID, competencia string) (*relatorio.Resumo, error) {
	var resumo relatorio.Resumo
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(valor_total), 0),
		       COALESCE(SUM(valor_total) FILTER (WHERE ind_pgto = '0'), 0),
		       COALESCE(SUM(valor_total) FILTER (WHERE ind_pgto = '1'), 0)
		FROM documentos_fiscais
		WHERE empresa_id = $1
		  AND ind_oper = '1'
		  AND ($2 = '' OR to_char(data, 'YYYY-MM') = $2)`, empresaID, competencia,
	).Scan(&resumo.TotalVendas, &resumo.VendasAVista, &resumo.VendasAPrazo)
	if err != nil {
		return nil, fmt.Errorf("resumo de vendas: %w", err)
	}
	return &resumo, nil
}

// ApuracaoPorCfop totais do analítico C190 por CFOP, como declarados no arquivo.
func (r *RelatorioRepo) ApuracaoPorCfop(empresaID, competencia string) ([]relatorio.TotalCfop, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT ap.cfop, COALESCE(SUM(ap.valor_operacao), 0)
		FROM apuracoes_cfop ap
		JOIN documentos_fiscais d ON d.id = ap.documento_id
		WHERE d.empresa_id = $1
		  AND ($2 = '' OR to_char(d.data, 'YYYY-MM') = $2)
		GROUP BY ap.cfop
		ORDER BY ap.cfop`, empresaID, competencia)
	if err != nil {
		return nil, fmt.Errorf("apuração por cfop: %w", err)
	}
	defer rows.Close()

	var totais []relatorio.TotalCfop
	for rows.Next() {
		var t relatorio.TotalCfop
		if err := rows.Scan(&t.Cfop, &t.Total); err != nil {
			return nil, fmt.Errorf("scan apuração: %w", err)
		}
		totais = append(totais, t)
	}
	return totais, rows.Err()
}

// Estatisticas contagens e datas extremas dos dados importados.
func (r *RelatorioRepo) Estatisticas(empresaID string) (*relatorio.Estatisticas, error) {
	var est relatorio.Estatisticas
	err := r.q.QueryRow(context.Background(), `
		SELECT
			(SELECT COUNT(*) FROM produtos WHERE empresa_id = $1 AND ativo),
			(SELECT COUNT(*) FROM produtos WHERE empresa_id = $1 AND ativo AND acumulador IS NULL),
			(SELECT COUNT(*) FROM documentos_fiscais WHERE empresa_id = $1),
			(SELECT COUNT(*) FROM vendas WHERE empresa_id = $1),
			(SELECT COALESCE(SUM(valor_total), 0) FROM vendas WHERE empresa_id = $1)`, empresaID,
	).Scan(&est.TotalProdutos, &est.ProdutosSemAcumulador, &est.TotalDocumentos, &est.TotalVendas, &est.ValorTotalVendas)
	if err != nil {
		return nil, fmt.Errorf("estatísticas: %w", err)
	}

	var primeira, ultima *time.Time
	err = r.q.QueryRow(context.Background(),
		`SELECT MIN(data), MAX(data) FROM vendas WHERE empresa_id = $1`, empresaID,
	).Scan(&primeira, &ultima)
	if err != nil {
		return nil, fmt.Errorf("datas de venda: %w", err)
	}
	est.PrimeiraVenda = primeira
	est.UltimaVenda = ultima
	return &est, nil
}
