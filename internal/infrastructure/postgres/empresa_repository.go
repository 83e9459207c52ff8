package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação do porto EmpresaRepository sobre PostgreSQL
// (usável com pool ou tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste uma nova empresa. CNPJ é único: a corrida entre duas
// importações simultâneas da mesma empresa vira ErrDuplicate.
func (r *EmpresaRepo) Create(empresa *entity.Empresa) error {
	query := `
		INSERT INTO empresas (id, cnpj, razao_social, inscricao_estadual, uf, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		empresa.ID, empresa.CNPJ, empresa.RazaoSocial,
		empresa.InscricaoEstadual, empresa.UF, empresa.CriadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtém uma empresa por ID.
func (r *EmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	query := `
		SELECT id, cnpj, razao_social, inscricao_estadual, uf, criado_em
		FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CNPJ, &e.RazaoSocial, &e.InscricaoEstadual, &e.UF, &e.CriadoEm,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// GetByCNPJ obtém uma empresa pelo CNPJ (somente dígitos).
func (r *EmpresaRepo) GetByCNPJ(cnpj string) (*entity.Empresa, error) {
	query := `
		SELECT id, cnpj, razao_social, inscricao_estadual, uf, criado_em
		FROM empresas WHERE cnpj = $1`
	var e entity.Empresa
	err := r.q.QueryRow(context.Background(), query, cnpj).Scan(
		&e.ID, &e.CNPJ, &e.RazaoSocial, &e.InscricaoEstadual, &e.UF, &e.CriadoEm,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa by cnpj: %w", err)
	}
	return &e, nil
}

// List devolve as empresas em ordem de razão social.
func (r *EmpresaRepo) List() ([]*entity.Empresa, error) {
	query := `
		SELECT id, cnpj, razao_social, inscricao_estadual, uf, criado_em
		FROM empresas ORDER BY razao_social`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.CNPJ, &e.RazaoSocial, &e.InscricaoEstadual, &e.UF, &e.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
