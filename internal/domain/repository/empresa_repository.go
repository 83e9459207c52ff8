package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// EmpresaRepository define o porto de persistência de Empresa (DIP).
type EmpresaRepository interface {
	Create(empresa *entity.Empresa) error
	GetByID(id string) (*entity.Empresa, error)
	GetByCNPJ(cnpj string) (*entity.Empresa, error)
	List() ([]*entity.Empresa, error)
}
