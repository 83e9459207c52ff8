package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.CfopRepository = (*CfopRepo)(nil)

// CfopRepo implementação do porto CfopRepository sobre PostgreSQL.
type CfopRepo struct {
	q Querier
}

// NewCfopRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCfopRepository(q Querier) *CfopRepo {
	return &CfopRepo{q: q}
}

// Create persiste um novo CFOP.
func (r *CfopRepo) Create(cfop *entity.Cfop) error {
	query := `INSERT INTO cfops (cfop, descricao, data_cadastro) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, cfop.Cfop, cfop.Descricao, cfop.DataCadastro)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cfop: %w", err)
	}
	return nil
}

// GetByCodigo obtém um CFOP pelo código de 4 dígitos.
func (r *CfopRepo) GetByCodigo(codigo string) (*entity.Cfop, error) {
	query := `SELECT cfop, descricao, data_cadastro FROM cfops WHERE cfop = $1`
	var c entity.Cfop
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(&c.Cfop, &c.Descricao, &c.DataCadastro)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cfop: %w", err)
	}
	return &c, nil
}

// List lista CFOPs em ordem de código, filtrando por código ou descrição.
func (r *CfopRepo) List(busca string) ([]*entity.Cfop, error) {
	query := `SELECT cfop, descricao, data_cadastro FROM cfops`
	args := []any{}
	if busca != "" {
		query += ` WHERE cfop ILIKE $1 OR descricao ILIKE $1`
		args = append(args, "%"+busca+"%")
	}
	query += ` ORDER BY cfop`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cfops: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cfop
	for rows.Next() {
		var c entity.Cfop
		if err := rows.Scan(&c.Cfop, &c.Descricao, &c.DataCadastro); err != nil {
			return nil, fmt.Errorf("scan cfop: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update atualiza a descrição de um CFOP.
func (r *CfopRepo) Update(cfop *entity.Cfop) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE cfops SET descricao = $2 WHERE cfop = $1`, cfop.Cfop, cfop.Descricao)
	if err != nil {
		return fmt.Errorf("update cfop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um CFOP sem acumuladores associados; a FK transforma o uso
// remanescente em ErrCfopEmUso.
func (r *CfopRepo) Delete(codigo string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cfops WHERE cfop = $1`, codigo)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCfopEmUso
		}
		return fmt.Errorf("delete cfop: %w", err)
	}
	return nil
}
