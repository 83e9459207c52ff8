package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// ClassificacaoHandler expõe o motor de classificação: sugestões, aplicação
// aprovada e inconsistências.
type ClassificacaoHandler struct {
	uc *usecase.ClassificacaoUseCase
}

// NewClassificacaoHandler constrói o handler.
func NewClassificacaoHandler(uc *usecase.ClassificacaoUseCase) *ClassificacaoHandler {
	return &ClassificacaoHandler{uc: uc}
}

// Sugestoes godoc
// @Summary      Calcular sugestões de acumulador para produtos sem classificação
// @Tags         classificacao
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SugestoesRequest  true  "Empresa e limite opcional"
// @Success      200  {object}  dto.SugestoesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/classificacao/sugestoes [post]
func (h *ClassificacaoHandler) Sugestoes(c *fiber.Ctx) error {
	var in dto.SugestoesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.EmpresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.Sugestoes(in.EmpresaID, in.Limite)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Aplicar godoc
// @Summary      Aplicar sugestões aprovadas pelo contador
// @Tags         classificacao
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AplicarSugestoesRequest  true  "Pares produto/acumulador aprovados"
// @Success      200  {object}  dto.AplicarSugestoesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/classificacao/aplicar [post]
func (h *ClassificacaoHandler) Aplicar(c *fiber.Ctx) error {
	var in dto.AplicarSugestoesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.EmpresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.AplicarSugestoes(in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Inconsistencias godoc
// @Summary      Pares de produtos semelhantes com acumuladores divergentes
// @Tags         classificacao
// @Produce      json
// @Param        empresa_id  query  string  true  "ID da empresa"
// @Success      200  {object}  dto.InconsistenciasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/classificacao/inconsistencias [get]
func (h *ClassificacaoHandler) Inconsistencias(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.Inconsistencias(empresaID)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
