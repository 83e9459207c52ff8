package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// CfopRepository define o porto de persistência de Cfop (DIP).
type CfopRepository interface {
	Create(cfop *entity.Cfop) error
	GetByCodigo(cfop string) (*entity.Cfop, error)
	List(busca string) ([]*entity.Cfop, error)
	Update(cfop *entity.Cfop) error
	Delete(cfop string) error
}
