package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// AcumuladorRepository define o porto de persistência de Acumulador (DIP).
type AcumuladorRepository interface {
	Create(acumulador *entity.Acumulador) error
	GetByCodigo(codigo string) (*entity.Acumulador, error)
	List(busca string) ([]*entity.Acumulador, error)
	Update(acumulador *entity.Acumulador) error
	Delete(codigo string) error
	CountByCfop(cfop string) (int, error)
}
