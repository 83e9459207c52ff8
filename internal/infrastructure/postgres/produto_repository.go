package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoColunas = `
	id, empresa_id, codigo_item, descricao_item, unidade, ncm, acumulador,
	aliquota_icms, cest, cod_barras, ativo, data_cadastro, data_alteracao`

// Upsert insere o produto ou atualiza os campos de catálogo quando
// (empresa, código) já existe. Acumulador e ativo são preservados no
// conflito: a reimportação não pode destruir classificações já feitas.
func (r *ProdutoRepo) Upsert(produto *entity.Produto) error {
	query := `
		INSERT INTO produtos (id, empresa_id, codigo_item, descricao_item, unidade, ncm, acumulador,
		                      aliquota_icms, cest, cod_barras, ativo, data_cadastro, data_alteracao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (empresa_id, codigo_item) DO UPDATE SET
			descricao_item = EXCLUDED.descricao_item,
			unidade        = EXCLUDED.unidade,
			ncm            = EXCLUDED.ncm,
			aliquota_icms  = EXCLUDED.aliquota_icms,
			cest           = EXCLUDED.cest,
			cod_barras     = EXCLUDED.cod_barras,
			data_alteracao = EXCLUDED.data_alteracao`
	_, err := r.q.Exec(context.Background(), query,
		produto.ID, produto.EmpresaID, produto.CodigoItem, produto.DescricaoItem,
		produto.Unidade, produto.NCM, nullIfEmpty(produto.Acumulador),
		produto.AliquotaICMS, produto.CEST, produto.CodBarras, produto.Ativo,
		produto.DataCadastro, produto.DataAlteracao,
	)
	if err != nil {
		return fmt.Errorf("upsert produto: %w", err)
	}
	return nil
}

// GetByCodigo obtém um produto pela chave de negócio (empresa, código).
func (r *ProdutoRepo) GetByCodigo(empresaID, codigoItem string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + ` FROM produtos WHERE empresa_id = $1 AND codigo_item = $2`
	produto, err := scanProduto(r.q.QueryRow(context.Background(), query, empresaID, codigoItem))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return produto, nil
}

// List lista produtos ativos com filtro de situação e busca textual,
// devolvendo também o total para paginação.
func (r *ProdutoRepo) List(empresaID string, filtro repository.FiltroProdutos) ([]*entity.Produto, int, error) {
	where := `WHERE empresa_id = $1 AND ativo`
	args := []any{empresaID}

	switch filtro.Situacao {
	case "cadastrados":
		where += ` AND acumulador IS NOT NULL`
	case "naoCadastrados":
		where += ` AND acumulador IS NULL`
	}
	if filtro.Busca != "" {
		args = append(args, "%"+filtro.Busca+"%")
		where += fmt.Sprintf(` AND (codigo_item ILIKE $%d OR descricao_item ILIKE $%d OR ncm ILIKE $%d)`,
			len(args), len(args), len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM produtos `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count produtos: %w", err)
	}

	args = append(args, filtro.Limit, filtro.Offset)
	query := fmt.Sprintf(`SELECT %s FROM produtos %s ORDER BY codigo_item LIMIT $%d OFFSET $%d`,
		produtoColunas, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Produto
	for rows.Next() {
		produto, err := scanProduto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, produto)
	}
	return list, total, rows.Err()
}

// ListSemAcumulador produtos ativos ainda não classificados, em ordem de código.
func (r *ProdutoRepo) ListSemAcumulador(empresaID string, limit int) ([]*entity.Produto, error) {
	return r.listPorClassificacao(empresaID, `acumulador IS NULL`, limit)
}

// ListComAcumulador produtos ativos já classificados, a base de referência
// do motor de classificação.
func (r *ProdutoRepo) ListComAcumulador(empresaID string, limit int) ([]*entity.Produto, error) {
	return r.listPorClassificacao(empresaID, `acumulador IS NOT NULL`, limit)
}

func (r *ProdutoRepo) listPorClassificacao(empresaID, cond string, limit int) ([]*entity.Produto, error) {
	query := fmt.Sprintf(`SELECT %s FROM produtos WHERE empresa_id = $1 AND ativo AND %s ORDER BY codigo_item LIMIT $2`,
		produtoColunas, cond)
	rows, err := r.q.Query(context.Background(), query, empresaID, limit)
	if err != nil {
		return nil, fmt.Errorf("list produtos por classificação: %w", err)
	}
	defer rows.Close()

	var list []*entity.Produto
	for rows.Next() {
		produto, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, produto)
	}
	return list, rows.Err()
}

// SetAcumulador atualização atômica de uma única linha: associa (ou troca) o
// acumulador do produto. FK inexistente vira ErrInvalidInput; produto
// inexistente vira ErrNotFound. Em ambos os casos o valor anterior permanece.
func (r *ProdutoRepo) SetAcumulador(empresaID, codigoItem, acumulador string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE produtos SET acumulador = $3, data_alteracao = now() WHERE empresa_id = $1 AND codigo_item = $2`,
		empresaID, codigoItem, nullIfEmpty(acumulador),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: acumulador %s não existe", domain.ErrInvalidInput, acumulador)
		}
		return fmt.Errorf("set acumulador: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Desativar inativação lógica; o produto some das listagens mas as vendas
// históricas continuam íntegras.
func (r *ProdutoRepo) Desativar(empresaID, codigoItem string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE produtos SET ativo = false, data_alteracao = now() WHERE empresa_id = $1 AND codigo_item = $2`,
		empresaID, codigoItem,
	)
	if err != nil {
		return fmt.Errorf("desativar produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByAcumulador conta os produtos associados a um acumulador, em
// qualquer empresa. Guarda da exclusão de acumuladores.
func (r *ProdutoRepo) CountByAcumulador(codigoAcumulador string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM produtos WHERE acumulador = $1`, codigoAcumulador,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count produtos por acumulador: %w", err)
	}
	return total, nil
}

// scanProduto lê uma linha na ordem de produtoColunas.
func scanProduto(row interface{ Scan(...any) error }) (*entity.Produto, error) {
	var p entity.Produto
	var acumulador *string
	err := row.Scan(
		&p.ID, &p.EmpresaID, &p.CodigoItem, &p.DescricaoItem, &p.Unidade, &p.NCM,
		&acumulador, &p.AliquotaICMS, &p.CEST, &p.CodBarras, &p.Ativo,
		&p.DataCadastro, &p.DataAlteracao,
	)
	if err != nil {
		return nil, err
	}
	p.Acumulador = emptyIfNull(acumulador)
	return &p, nil
}
