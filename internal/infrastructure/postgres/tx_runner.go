package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contabilize/sped-fiscal-api/internal/application/sped"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

var _ sped.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL. A importação
// SPED roda inteira sob um único Run: qualquer erro desfaz tudo, inclusive a
// criação da empresa.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner sobre o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia a transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	empresaRepo repository.EmpresaRepository,
	produtoRepo repository.ProdutoRepository,
	documentoRepo repository.DocumentoFiscalRepository,
	vendaRepo repository.VendaRepository,
	apuracaoRepo repository.ApuracaoCfopRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	empresaRepo := NewEmpresaRepository(tx)
	produtoRepo := NewProdutoRepository(tx)
	documentoRepo := NewDocumentoFiscalRepository(tx)
	vendaRepo := NewVendaRepository(tx)
	apuracaoRepo := NewApuracaoCfopRepository(tx)

	if err := fn(empresaRepo, produtoRepo, documentoRepo, vendaRepo, apuracaoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
