package usecase

import (
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/classificacao"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// ClassificacaoUseCase liga o motor de similaridade ao catálogo persistido.
// Sugestoes e Inconsistencias são somente leitura; a única escrita acontece
// em AplicarSugestoes, quando o contador aprova explicitamente os pares. O
// estado pendente viaja na resposta e volta na aprovação: nada fica retido no
// servidor entre as duas chamadas.
type ClassificacaoUseCase struct {
	engine         *classificacao.Engine
	produtoRepo    repository.ProdutoRepository
	acumuladorRepo repository.AcumuladorRepository
	maxSugestoes   int
	maxReferencias int
}

// NewClassificacaoUseCase constrói o caso de uso.
func NewClassificacaoUseCase(
	engine *classificacao.Engine,
	produtoRepo repository.ProdutoRepository,
	acumuladorRepo repository.AcumuladorRepository,
	maxSugestoes, maxReferencias int,
) *ClassificacaoUseCase {
	if maxSugestoes <= 0 {
		maxSugestoes = 50
	}
	if maxReferencias <= 0 {
		maxReferencias = 2000
	}
	return &ClassificacaoUseCase{
		engine:         engine,
		produtoRepo:    produtoRepo,
		acumuladorRepo: acumuladorRepo,
		maxSugestoes:   maxSugestoes,
		maxReferencias: maxReferencias,
	}
}

// Sugestoes calcula propostas de acumulador para os produtos sem
// classificação da empresa. Resultado transiente; nenhum produto é alterado.
func (uc *ClassificacaoUseCase) Sugestoes(empresaID string, limite int) (*dto.SugestoesResponse, error) {
	if limite <= 0 || limite > uc.maxSugestoes {
		limite = uc.maxSugestoes
	}
	semAcumulador, err := uc.produtoRepo.ListSemAcumulador(empresaID, limite)
	if err != nil {
		return nil, err
	}
	classificados, err := uc.produtoRepo.ListComAcumulador(empresaID, uc.maxReferencias)
	if err != nil {
		return nil, err
	}

	produtos := make([]classificacao.Produto, 0, len(semAcumulador))
	for _, p := range semAcumulador {
		produtos = append(produtos, classificacao.Produto{
			CodigoItem: p.CodigoItem,
			Descricao:  p.DescricaoItem,
			NCM:        p.NCM,
		})
	}
	referencias := make([]classificacao.Referencia, 0, len(classificados))
	for _, p := range classificados {
		referencias = append(referencias, classificacao.Referencia{
			CodigoItem: p.CodigoItem,
			Descricao:  p.DescricaoItem,
			NCM:        p.NCM,
			Acumulador: p.Acumulador,
		})
	}

	sugestoes := uc.engine.Sugerir(produtos, referencias)
	out := &dto.SugestoesResponse{
		Analisados: len(produtos),
		Items:      make([]dto.SugestaoResponse, 0, len(sugestoes)),
	}
	for _, s := range sugestoes {
		out.Items = append(out.Items, dto.SugestaoResponse{
			CodigoItem:         s.CodigoItem,
			DescricaoItem:      s.Descricao,
			NCM:                s.NCM,
			AcumuladorSugerido: s.AcumuladorSugerido,
			Similaridade:       s.Similaridade,
			Motivo:             s.Motivo,
		})
	}
	return out, nil
}

// AplicarSugestoes grava os pares produto/acumulador aprovados. Cada item é
// uma atualização atômica independente: os que falham mantêm o acumulador
// anterior e voltam listados em Falhas.
func (uc *ClassificacaoUseCase) AplicarSugestoes(in dto.AplicarSugestoesRequest) (*dto.AplicarSugestoesResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: nenhuma sugestão aprovada informada", domain.ErrInvalidInput)
	}
	out := &dto.AplicarSugestoesResponse{}
	for _, item := range in.Items {
		if err := uc.aplicarItem(in.EmpresaID, item); err != nil {
			out.Falhas = append(out.Falhas, dto.FalhaAplicacao{CodigoItem: item.CodigoItem, Motivo: err.Error()})
			continue
		}
		out.Aplicadas++
	}
	return out, nil
}

func (uc *ClassificacaoUseCase) aplicarItem(empresaID string, item dto.AplicacaoItem) error {
	acumulador, err := uc.acumuladorRepo.GetByCodigo(item.Acumulador)
	if err != nil {
		return err
	}
	if acumulador == nil {
		return fmt.Errorf("acumulador %s não existe", item.Acumulador)
	}
	produto, err := uc.produtoRepo.GetByCodigo(empresaID, item.CodigoItem)
	if err != nil {
		return err
	}
	if produto == nil {
		return fmt.Errorf("produto %s não existe", item.CodigoItem)
	}
	return uc.produtoRepo.SetAcumulador(empresaID, item.CodigoItem, item.Acumulador)
}

// Inconsistencias varre os produtos já classificados em busca de pares quase
// idênticos com acumuladores divergentes. Somente leitura.
func (uc *ClassificacaoUseCase) Inconsistencias(empresaID string) (*dto.InconsistenciasResponse, error) {
	classificados, err := uc.produtoRepo.ListComAcumulador(empresaID, uc.maxReferencias)
	if err != nil {
		return nil, err
	}
	referencias := make([]classificacao.Referencia, 0, len(classificados))
	for _, p := range classificados {
		referencias = append(referencias, classificacao.Referencia{
			CodigoItem: p.CodigoItem,
			Descricao:  p.DescricaoItem,
			NCM:        p.NCM,
			Acumulador: p.Acumulador,
		})
	}

	inconsistencias := uc.engine.Inconsistencias(referencias)
	out := &dto.InconsistenciasResponse{
		Analisados: len(referencias),
		Items:      make([]dto.InconsistenciaResponse, 0, len(inconsistencias)),
	}
	for _, inc := range inconsistencias {
		out.Items = append(out.Items, dto.InconsistenciaResponse{
			ProdutoA: dto.LadoInconsistencia{
				CodigoItem:    inc.ProdutoA.CodigoItem,
				DescricaoItem: inc.ProdutoA.Descricao,
				Acumulador:    inc.ProdutoA.Acumulador,
			},
			ProdutoB: dto.LadoInconsistencia{
				CodigoItem:    inc.ProdutoB.CodigoItem,
				DescricaoItem: inc.ProdutoB.Descricao,
				Acumulador:    inc.ProdutoB.Acumulador,
			},
			Similaridade: inc.Similaridade,
			NcmIgual:     inc.NcmIgual,
		})
	}
	return out, nil
}
