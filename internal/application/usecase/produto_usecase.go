package usecase

import (
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// ProdutoUseCase consultas e classificação manual de produtos. Produtos
// nascem da importação (registro 0200); aqui eles são listados, inativados e
// associados a acumuladores, um a um ou em massa.
type ProdutoUseCase struct {
	produtoRepo    repository.ProdutoRepository
	acumuladorRepo repository.AcumuladorRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository, acumuladorRepo repository.AcumuladorRepository) *ProdutoUseCase {
	return &ProdutoUseCase{produtoRepo: produtoRepo, acumuladorRepo: acumuladorRepo}
}

// List lista produtos da empresa com filtro de situação ("cadastrados" =
// com acumulador, "naoCadastrados" = sem) e busca por código, descrição ou NCM.
func (uc *ProdutoUseCase) List(empresaID, situacao, busca string, page dto.PageRequest) (*dto.ProdutoListResponse, error) {
	if situacao != "" && situacao != "cadastrados" && situacao != "naoCadastrados" {
		return nil, fmt.Errorf("%w: filtro de situação desconhecido: %s", domain.ErrInvalidInput, situacao)
	}
	page.Normalizar()
	produtos, total, err := uc.produtoRepo.List(empresaID, repository.FiltroProdutos{
		Situacao: situacao,
		Busca:    domain.SanitizarBusca(busca),
		Limit:    page.PerPage,
		Offset:   page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProdutoListResponse{
		Items: make([]dto.ProdutoResponse, 0, len(produtos)),
		Page:  dto.PageResponse{Page: page.Page, PerPage: page.PerPage, Total: total},
	}
	for _, p := range produtos {
		out.Items = append(out.Items, *toProdutoResponse(p))
	}
	return out, nil
}

// Desativar inativa um produto. Produtos nunca são removidos fisicamente:
// vendas históricas continuam a referenciá-los.
func (uc *ProdutoUseCase) Desativar(empresaID, codigoItem string) error {
	produto, err := uc.produtoRepo.GetByCodigo(empresaID, codigoItem)
	if err != nil {
		return err
	}
	if produto == nil {
		return domain.ErrNotFound
	}
	return uc.produtoRepo.Desativar(empresaID, codigoItem)
}

// AtualizarAcumulador associa um acumulador a um único produto (classificação
// manual). O acumulador deve existir; a escrita é uma única atualização
// atômica de linha.
func (uc *ProdutoUseCase) AtualizarAcumulador(in dto.AtualizarAcumuladorRequest) (*dto.ProdutoResponse, error) {
	if err := uc.validarAcumulador(in.Acumulador); err != nil {
		return nil, err
	}
	produto, err := uc.produtoRepo.GetByCodigo(in.EmpresaID, in.CodigoItem)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.produtoRepo.SetAcumulador(in.EmpresaID, in.CodigoItem, in.Acumulador); err != nil {
		return nil, err
	}
	produto.Acumulador = in.Acumulador
	return toProdutoResponse(produto), nil
}

// AcumuladorEmMassa associa o mesmo acumulador a vários produtos. Falhas são
// reportadas por código; os produtos que falharam mantêm o acumulador anterior.
func (uc *ProdutoUseCase) AcumuladorEmMassa(in dto.AcumuladorEmMassaRequest) (*dto.AtualizacaoEmMassaResponse, error) {
	if len(in.Codigos) == 0 {
		return nil, fmt.Errorf("%w: nenhum código de produto informado", domain.ErrInvalidInput)
	}
	if err := uc.validarAcumulador(in.Acumulador); err != nil {
		return nil, err
	}
	out := &dto.AtualizacaoEmMassaResponse{}
	for _, codigo := range in.Codigos {
		if err := uc.produtoRepo.SetAcumulador(in.EmpresaID, codigo, in.Acumulador); err != nil {
			out.Falhas = append(out.Falhas, codigo)
			continue
		}
		out.Atualizados++
	}
	return out, nil
}

func (uc *ProdutoUseCase) validarAcumulador(codigo string) error {
	if err := domain.ValidarCodigoAcumulador(codigo); err != nil {
		return err
	}
	acumulador, err := uc.acumuladorRepo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if acumulador == nil {
		return fmt.Errorf("%w: acumulador %s não existe", domain.ErrInvalidInput, codigo)
	}
	return nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:            p.ID,
		EmpresaID:     p.EmpresaID,
		CodigoItem:    p.CodigoItem,
		DescricaoItem: p.DescricaoItem,
		Unidade:       p.Unidade,
		NCM:           p.NCM,
		Acumulador:    p.Acumulador,
		AliquotaICMS:  p.AliquotaICMS,
		CEST:          p.CEST,
		CodBarras:     p.CodBarras,
		Ativo:         p.Ativo,
		DataCadastro:  p.DataCadastro,
		DataAlteracao: p.DataAlteracao,
	}
}
