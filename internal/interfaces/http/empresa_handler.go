package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// EmpresaHandler expõe as empresas conhecidas (criadas pela importação SPED).
type EmpresaHandler struct {
	uc *usecase.EmpresaUseCase
}

// NewEmpresaHandler constrói o handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Produce      json
// @Success      200  {object}  dto.EmpresaListResponse
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter empresa por ID
// @Tags         empresas
// @Produce      json
// @Param        id  path  string  true  "ID da empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
