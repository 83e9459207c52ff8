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

// CfopUseCase CRUD da tabela de referência de CFOPs. A exclusão é recusada
// enquanto houver acumuladores apontando para o código.
type CfopUseCase struct {
	repo           repository.CfopRepository
	acumuladorRepo repository.AcumuladorRepository
}

// NewCfopUseCase constrói o caso de uso.
func NewCfopUseCase(repo repository.CfopRepository, acumuladorRepo repository.AcumuladorRepository) *CfopUseCase {
	return &CfopUseCase{repo: repo, acumuladorRepo: acumuladorRepo}
}

// Create cadastra um CFOP.
func (uc *CfopUseCase) Create(in dto.CreateCfopRequest) (*dto.CfopResponse, error) {
	if err := domain.ValidarCfop(in.Cfop); err != nil {
		return nil, err
	}
	if err := domain.ValidarDescricao(in.Descricao); err != nil {
		return nil, err
	}
	cfop := &entity.Cfop{
		Cfop:         strings.TrimSpace(in.Cfop),
		Descricao:    strings.TrimSpace(in.Descricao),
		DataCadastro: time.Now(),
	}
	if err := uc.repo.Create(cfop); err != nil {
		return nil, err
	}
	return toCfopResponse(cfop), nil
}

// List lista CFOPs, opcionalmente filtrados por código ou descrição.
func (uc *CfopUseCase) List(busca string) (*dto.CfopListResponse, error) {
	cfops, err := uc.repo.List(domain.SanitizarBusca(busca))
	if err != nil {
		return nil, err
	}
	out := &dto.CfopListResponse{Items: make([]dto.CfopResponse, 0, len(cfops))}
	for _, c := range cfops {
		out.Items = append(out.Items, *toCfopResponse(c))
	}
	return out, nil
}

// Update atualiza a descrição de um CFOP.
func (uc *CfopUseCase) Update(codigo string, in dto.UpdateCfopRequest) (*dto.CfopResponse, error) {
	cfop, err := uc.repo.GetByCodigo(strings.TrimSpace(codigo))
	if err != nil {
		return nil, err
	}
	if cfop == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.ValidarDescricao(in.Descricao); err != nil {
		return nil, err
	}
	cfop.Descricao = strings.TrimSpace(in.Descricao)
	if err := uc.repo.Update(cfop); err != nil {
		return nil, err
	}
	return toCfopResponse(cfop), nil
}

// Delete remove um CFOP sem acumuladores associados.
func (uc *CfopUseCase) Delete(codigo string) error {
	codigo = strings.TrimSpace(codigo)
	cfop, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if cfop == nil {
		return domain.ErrNotFound
	}
	emUso, err := uc.acumuladorRepo.CountByCfop(codigo)
	if err != nil {
		return err
	}
	if emUso > 0 {
		return fmt.Errorf("%w: %d acumulador(es)", domain.ErrCfopEmUso, emUso)
	}
	return uc.repo.Delete(codigo)
}

func toCfopResponse(c *entity.Cfop) *dto.CfopResponse {
	return &dto.CfopResponse{
		Cfop:         c.Cfop,
		Descricao:    c.Descricao,
		DataCadastro: c.DataCadastro,
	}
}
