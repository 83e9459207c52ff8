package sped

import (
	"context"

	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante a atomicidade da importação:
// ou o arquivo inteiro entra, ou nada entra.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		empresaRepo repository.EmpresaRepository,
		produtoRepo repository.ProdutoRepository,
		documentoRepo repository.DocumentoFiscalRepository,
		vendaRepo repository.VendaRepository,
		apuracaoRepo repository.ApuracaoCfopRepository,
	) error) error
}
