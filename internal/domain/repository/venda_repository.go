package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// VendaRepository define o porto de persistência dos itens de venda.
type VendaRepository interface {
	InsertMany(vendas []*entity.Venda) error
}

// ApuracaoCfopRepository define o porto de persistência do analítico C190.
type ApuracaoCfopRepository interface {
	InsertMany(apuracoes []*entity.ApuracaoCfop) error
}
