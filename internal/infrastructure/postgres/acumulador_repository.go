package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.AcumuladorRepository = (*AcumuladorRepo)(nil)

// AcumuladorRepo implementação do porto AcumuladorRepository sobre PostgreSQL.
type AcumuladorRepo struct {
	q Querier
}

// NewAcumuladorRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAcumuladorRepository(q Querier) *AcumuladorRepo {
	return &AcumuladorRepo{q: q}
}

// Create persiste um novo acumulador.
func (r *AcumuladorRepo) Create(acumulador *entity.Acumulador) error {
	query := `
		INSERT INTO acumuladores (codigo, descricao, cfop, data_cadastro, data_alteracao)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		acumulador.Codigo, acumulador.Descricao, acumulador.Cfop,
		acumulador.DataCadastro, acumulador.DataAlteracao,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: CFOP %s não cadastrado", domain.ErrInvalidInput, acumulador.Cfop)
		}
		return fmt.Errorf("insert acumulador: %w", err)
	}
	return nil
}

// GetByCodigo obtém um acumulador pelo código.
func (r *AcumuladorRepo) GetByCodigo(codigo string) (*entity.Acumulador, error) {
	query := `
		SELECT codigo, descricao, cfop, data_cadastro, data_alteracao
		FROM acumuladores WHERE codigo = $1`
	var a entity.Acumulador
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&a.Codigo, &a.Descricao, &a.Cfop, &a.DataCadastro, &a.DataAlteracao,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get acumulador: %w", err)
	}
	return &a, nil
}

// List lista acumuladores em ordem de código, filtrando por código ou
// descrição quando busca não é vazia.
func (r *AcumuladorRepo) List(busca string) ([]*entity.Acumulador, error) {
	query := `
		SELECT codigo, descricao, cfop, data_cadastro, data_alteracao
		FROM acumuladores`
	args := []any{}
	if busca != "" {
		query += ` WHERE codigo ILIKE $1 OR descricao ILIKE $1`
		args = append(args, "%"+busca+"%")
	}
	query += ` ORDER BY codigo`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list acumuladores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Acumulador
	for rows.Next() {
		var a entity.Acumulador
		if err := rows.Scan(&a.Codigo, &a.Descricao, &a.Cfop, &a.DataCadastro, &a.DataAlteracao); err != nil {
			return nil, fmt.Errorf("scan acumulador: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update atualiza descrição e CFOP de um acumulador.
func (r *AcumuladorRepo) Update(acumulador *entity.Acumulador) error {
	query := `
		UPDATE acumuladores SET descricao = $2, cfop = $3, data_alteracao = $4
		WHERE codigo = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		acumulador.Codigo, acumulador.Descricao, acumulador.Cfop, acumulador.DataAlteracao,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: CFOP %s não cadastrado", domain.ErrInvalidInput, acumulador.Cfop)
		}
		return fmt.Errorf("update acumulador: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um acumulador. Produtos ainda associados disparam a FK e
// viram ErrAcumuladorEmUso.
func (r *AcumuladorRepo) Delete(codigo string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM acumuladores WHERE codigo = $1`, codigo)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrAcumuladorEmUso
		}
		return fmt.Errorf("delete acumulador: %w", err)
	}
	return nil
}

// CountByCfop conta os acumuladores que apontam para um CFOP. Guarda da
// exclusão de CFOPs.
func (r *AcumuladorRepo) CountByCfop(cfop string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM acumuladores WHERE cfop = $1`, cfop,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count acumuladores por cfop: %w", err)
	}
	return total, nil
}
