package usecase

import (
	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// EmpresaUseCase consultas sobre empresas. Empresas nascem da importação de
// arquivos SPED (registro 0000); não há criação manual.
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase constrói o caso de uso.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// List lista as empresas cadastradas.
func (uc *EmpresaUseCase) List() (*dto.EmpresaListResponse, error) {
	empresas, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.EmpresaListResponse{Items: make([]dto.EmpresaResponse, 0, len(empresas))}
	for _, e := range empresas {
		out.Items = append(out.Items, *toEmpresaResponse(e))
	}
	return out, nil
}

// GetByID obtém uma empresa por ID.
func (uc *EmpresaUseCase) GetByID(id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	return toEmpresaResponse(empresa), nil
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:                e.ID,
		CNPJ:              e.CNPJ,
		RazaoSocial:       e.RazaoSocial,
		InscricaoEstadual: e.InscricaoEstadual,
		UF:                e.UF,
		CriadoEm:          e.CriadoEm,
	}
}
