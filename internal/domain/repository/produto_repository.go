package repository

import "github.com/contabilize/sped-fiscal-api/internal/domain/entity"

// FiltroProdutos filtros da listagem de produtos.
type FiltroProdutos struct {
	Situacao string // "" = todos, "cadastrados", "naoCadastrados"
	Busca    string // código, descrição ou NCM (ilike)
	Limit    int
	Offset   int
}

// ProdutoRepository define o porto de persistência de Produto (DIP).
// A chave de negócio é (empresa, código do item); Upsert preserva o
// acumulador e o flag ativo de produtos já existentes.
type ProdutoRepository interface {
	Upsert(produto *entity.Produto) error
	GetByCodigo(empresaID, codigoItem string) (*entity.Produto, error)
	List(empresaID string, filtro FiltroProdutos) ([]*entity.Produto, int, error)
	ListSemAcumulador(empresaID string, limit int) ([]*entity.Produto, error)
	ListComAcumulador(empresaID string, limit int) ([]*entity.Produto, error)
	SetAcumulador(empresaID, codigoItem, acumulador string) error
	Desativar(empresaID, codigoItem string) error
	CountByAcumulador(codigoAcumulador string) (int, error)
}
