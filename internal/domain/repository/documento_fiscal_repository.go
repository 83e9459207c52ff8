package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// DocumentoFiscalRepository define o porto de persistência de DocumentoFiscal.
// DeleteByCompetencias remove documentos por períodos YYYY-MM; vendas e
// apurações associadas caem em cascata.
type DocumentoFiscalRepository interface {
	InsertMany(documentos []*entity.DocumentoFiscal) error
	DeleteByCompetencias(empresaID string, competencias []string) (int64, error)
}
