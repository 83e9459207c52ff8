package postgres

import (
	"context"
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ repository.DocumentoFiscalRepository = (*DocumentoFiscalRepo)(nil)

// DocumentoFiscalRepo implementação do porto DocumentoFiscalRepository sobre
// PostgreSQL. Usado quase sempre dentro da transação de importação.
type DocumentoFiscalRepo struct {
	q Querier
}

// NewDocumentoFiscalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDocumentoFiscalRepository(q Querier) *DocumentoFiscalRepo {
	return &DocumentoFiscalRepo{q: q}
}

// InsertMany insere os documentos de uma importação.
func (r *DocumentoFiscalRepo) InsertMany(documentos []*entity.DocumentoFiscal) error {
	query := `
		INSERT INTO documentos_fiscais (id, empresa_id, num_documento, serie, data, valor_total, ind_oper, ind_pgto, data_importacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range documentos {
		_, err := r.q.Exec(context.Background(), query,
			d.ID, d.EmpresaID, d.NumDocumento, d.Serie, d.Data,
			d.ValorTotal, d.IndOper, d.IndPagamento, d.DataImportacao,
		)
		if err != nil {
			return fmt.Errorf("insert documento %s/%s: %w", d.NumDocumento, d.Serie, err)
		}
	}
	return nil
}

// DeleteByCompetencias remove os documentos da empresa cujas emissões caem
// nos períodos YYYY-MM informados. Vendas e apurações associadas caem em
// cascata; é o passo "substituir" da reimportação.
func (r *DocumentoFiscalRepo) DeleteByCompetencias(empresaID string, competencias []string) (int64, error) {
	if len(competencias) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM documentos_fiscais WHERE empresa_id = $1 AND to_char(data, 'YYYY-MM') = ANY($2)`,
		empresaID, competencias,
	)
	if err != nil {
		return 0, fmt.Errorf("delete documentos por competência: %w", err)
	}
	return cmd.RowsAffected(), nil
}
