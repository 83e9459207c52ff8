package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// AcumuladorMatcher busca acumuladores por aproximação textual da descrição.
// A implementação vive em infrastructure/search.
type AcumuladorMatcher interface {
	Buscar(termo string, acumuladores []*entity.Acumulador, limite int) []*entity.Acumulador
}

// AcumuladorUseCase CRUD dos acumuladores, os grupos de apuração que o
// contador mantém manualmente. A exclusão é recusada enquanto houver produtos
// classificados no acumulador.
type AcumuladorUseCase struct {
	repo     repository.AcumuladorRepository
	cfopRepo repository.CfopRepository
	prodRepo repository.ProdutoRepository
	matcher  AcumuladorMatcher
}

// NewAcumuladorUseCase constrói o caso de uso.
func NewAcumuladorUseCase(
	repo repository.AcumuladorRepository,
	cfopRepo repository.CfopRepository,
	prodRepo repository.ProdutoRepository,
	matcher AcumuladorMatcher,
) *AcumuladorUseCase {
	return &AcumuladorUseCase{repo: repo, cfopRepo: cfopRepo, prodRepo: prodRepo, matcher: matcher}
}

// Create cadastra um acumulador. O código é normalizado para maiúsculas e o
// CFOP associado deve existir.
func (uc *AcumuladorUseCase) Create(in dto.CreateAcumuladorRequest) (*dto.AcumuladorResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(in.Codigo))
	if err := domain.ValidarCodigoAcumulador(codigo); err != nil {
		return nil, err
	}
	if err := domain.ValidarDescricao(in.Descricao); err != nil {
		return nil, err
	}
	if err := uc.validarCfop(in.Cfop); err != nil {
		return nil, err
	}
	agora := time.Now()
	acumulador := &entity.Acumulador{
		Codigo:        codigo,
		Descricao:     strings.TrimSpace(in.Descricao),
		Cfop:          strings.TrimSpace(in.Cfop),
		DataCadastro:  agora,
		DataAlteracao: agora,
	}
	if err := uc.repo.Create(acumulador); err != nil {
		return nil, err
	}
	return toAcumuladorResponse(acumulador), nil
}

// List lista acumuladores, opcionalmente filtrados por código ou descrição.
func (uc *AcumuladorUseCase) List(busca string) (*dto.AcumuladorListResponse, error) {
	acumuladores, err := uc.repo.List(domain.SanitizarBusca(busca))
	if err != nil {
		return nil, err
	}
	out := &dto.AcumuladorListResponse{Items: make([]dto.AcumuladorResponse, 0, len(acumuladores))}
	for _, a := range acumuladores {
		out.Items = append(out.Items, *toAcumuladorResponse(a))
	}
	return out, nil
}

// Buscar procura acumuladores cuja descrição mais se aproxima do termo livre
// digitado pelo contador (ex. "venda consumidor" -> VENDAS).
func (uc *AcumuladorUseCase) Buscar(termo string, limite int) (*dto.BuscaAcumuladorResponse, error) {
	termo = domain.SanitizarBusca(termo)
	if termo == "" {
		return nil, fmt.Errorf("%w: termo de busca vazio", domain.ErrInvalidInput)
	}
	if limite <= 0 || limite > 20 {
		limite = 5
	}
	acumuladores, err := uc.repo.List("")
	if err != nil {
		return nil, err
	}
	encontrados := uc.matcher.Buscar(termo, acumuladores, limite)
	out := &dto.BuscaAcumuladorResponse{Termo: termo, Items: make([]dto.AcumuladorResponse, 0, len(encontrados))}
	for _, a := range encontrados {
		out.Items = append(out.Items, *toAcumuladorResponse(a))
	}
	return out, nil
}

// Update atualiza descrição e/ou CFOP de um acumulador existente.
func (uc *AcumuladorUseCase) Update(codigo string, in dto.UpdateAcumuladorRequest) (*dto.AcumuladorResponse, error) {
	acumulador, err := uc.repo.GetByCodigo(strings.ToUpper(strings.TrimSpace(codigo)))
	if err != nil {
		return nil, err
	}
	if acumulador == nil {
		return nil, domain.ErrNotFound
	}
	if in.Descricao != nil {
		if err := domain.ValidarDescricao(*in.Descricao); err != nil {
			return nil, err
		}
		acumulador.Descricao = strings.TrimSpace(*in.Descricao)
	}
	if in.Cfop != nil {
		if err := uc.validarCfop(*in.Cfop); err != nil {
			return nil, err
		}
		acumulador.Cfop = strings.TrimSpace(*in.Cfop)
	}
	acumulador.DataAlteracao = time.Now()
	if err := uc.repo.Update(acumulador); err != nil {
		return nil, err
	}
	return toAcumuladorResponse(acumulador), nil
}

// Delete remove um acumulador sem produtos associados.
func (uc *AcumuladorUseCase) Delete(codigo string) error {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	acumulador, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if acumulador == nil {
		return domain.ErrNotFound
	}
	emUso, err := uc.prodRepo.CountByAcumulador(codigo)
	if err != nil {
		return err
	}
	if emUso > 0 {
		return fmt.Errorf("%w: %d produto(s)", domain.ErrAcumuladorEmUso, emUso)
	}
	return uc.repo.Delete(codigo)
}

func (uc *AcumuladorUseCase) validarCfop(cfop string) error {
	if err := domain.ValidarCfop(cfop); err != nil {
		return err
	}
	existente, err := uc.cfopRepo.GetByCodigo(strings.TrimSpace(cfop))
	if err != nil {
		return err
	}
	if existente == nil {
		return fmt.Errorf("%w: CFOP %s não cadastrado", domain.ErrInvalidInput, cfop)
	}
	return nil
}

func toAcumuladorResponse(a *entity.Acumulador) *dto.AcumuladorResponse {
	return &dto.AcumuladorResponse{
		Codigo:        a.Codigo,
		Descricao:     a.Descricao,
		Cfop:          a.Cfop,
		DataCadastro:  a.DataCadastro,
		DataAlteracao: a.DataAlteracao,
	}
}
