package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var (
	_ repository.VendaRepository        = (*VendaRepo)(nil)
	_ repository.ApuracaoCfopRepository = (*ApuracaoCfopRepo)(nil)
)

// VendaRepo implementação do porto VendaRepository sobre PostgreSQL.
type VendaRepo struct {
	q Querier
}

// NewVendaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewVendaRepository(q Querier) *VendaRepo {
	return &VendaRepo{q: q}
}

// InsertMany insere os itens de venda de uma importação.
func (r *VendaRepo) InsertMany(vendas []*entity.Venda) error {
	query := `
		INSERT INTO vendas (id, documento_id, empresa_id, data, codigo_item, quantidade,
		                    valor_unitario, valor_total, valor_desconto, base_icms, valor_icms, aliquota_icms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, v := range vendas {
		_, err := r.q.Exec(context.Background(), query,
			v.ID, v.DocumentoID, v.EmpresaID, v.Data, v.CodigoItem, v.Quantidade,
			v.ValorUnitario, v.ValorTotal, v.ValorDesconto, v.BaseICMS, v.ValorICMS, v.AliquotaICMS,
		)
		if err != nil {
			return fmt.Errorf("insert venda %s: %w", v.CodigoItem, err)
		}
	}
	return nil
}

// ApuracaoCfopRepo implementação do porto ApuracaoCfopRepository sobre PostgreSQL.
type ApuracaoCfopRepo struct {
	q Querier
}

// NewApuracaoCfopRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewApuracaoCfopRepository(q Querier) *ApuracaoCfopRepo {
	return &ApuracaoCfopRepo{q: q}
}

// InsertMany insere os registros analíticos C190 de uma importação.
func (r *ApuracaoCfopRepo) InsertMany(apuracoes []*entity.ApuracaoCfop) error {
	query := `
		INSERT INTO apuracoes_cfop (id, documento_id, cst_icms, cfop, aliquota_icms, valor_operacao, base_icms, valor_icms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, ap := range apuracoes {
		_, err := r.q.Exec(context.Background(), query,
			ap.ID, ap.DocumentoID, ap.CstICMS, ap.Cfop, ap.AliquotaICMS,
			ap.ValorOperacao, ap.BaseICMS, ap.ValorICMS,
		)
		if err != nil {
			return fmt.Errorf("insert apuração %s/%s: %w", ap.CstICMS, ap.Cfop, err)
		}
	}
	return nil
}
