package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// CfopHandler trata o cadastro de CFOPs.
type CfopHandler struct {
	uc *usecase.CfopUseCase
}

// NewCfopHandler constrói o handler.
func NewCfopHandler(uc *usecase.CfopUseCase) *CfopHandler {
	return &CfopHandler{uc: uc}
}

// Create godoc
// @Summary      Criar CFOP
// @Tags         cfops
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCfopRequest  true  "Dados do CFOP"
// @Success      201  {object}  dto.CfopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cfops [post]
func (h *CfopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCfopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar CFOPs
// @Tags         cfops
// @Produce      json
// @Param        busca  query  string  false  "Busca em código e descrição"
// @Success      200  {object}  dto.CfopListResponse
// @Router       /api/cfops [get]
func (h *CfopHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("busca"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar CFOP
// @Tags         cfops
// @Accept       json
// @Produce      json
// @Param        cfop  path  string  true  "Código do CFOP"
// @Param        body  body  dto.UpdateCfopRequest  true  "Novos dados"
// @Success      200  {object}  dto.CfopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cfops/{cfop} [put]
func (h *CfopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCfopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("cfop"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover CFOP
// @Tags         cfops
// @Produce      json
// @Param        cfop  path  string  true  "Código do CFOP"
// @Success      204  "CFOP removido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "CFOP em uso por acumuladores"
// @Router       /api/cfops/{cfop} [delete]
func (h *CfopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("cfop")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
