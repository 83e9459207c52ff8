package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// AcumuladorHandler trata o cadastro de acumuladores (grupos fiscais).
type AcumuladorHandler struct {
	uc *usecase.AcumuladorUseCase
}

// NewAcumuladorHandler constrói o handler.
func NewAcumuladorHandler(uc *usecase.AcumuladorUseCase) *AcumuladorHandler {
	return &AcumuladorHandler{uc: uc}
}

// Create godoc
// @Summary      Criar acumulador
// @Tags         acumuladores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAcumuladorRequest  true  "Dados do acumulador"
// @Success      201  {object}  dto.AcumuladorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/acumuladores [post]
func (h *AcumuladorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAcumuladorRequest
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
// @Summary      Listar acumuladores
// @Tags         acumuladores
// @Produce      json
// @Param        busca  query  string  false  "Busca em código e descrição"
// @Success      200  {object}  dto.AcumuladorListResponse
// @Router       /api/acumuladores [get]
func (h *AcumuladorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("busca"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Buscar godoc
// @Summary      Busca aproximada de acumuladores por descrição
// @Tags         acumuladores
// @Produce      json
// @Param        q       query  string  true   "Termo de busca"
// @Param        limite  query  int     false  "Máximo de resultados (padrão 5, máx 20)"
// @Success      200  {object}  dto.BuscaAcumuladorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/acumuladores/buscar [get]
func (h *AcumuladorHandler) Buscar(c *fiber.Ctx) error {
	termo := c.Query("q")
	if termo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "parâmetro q é obrigatório",
		})
	}
	out, err := h.uc.Buscar(termo, c.QueryInt("limite", 0))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar acumulador
// @Tags         acumuladores
// @Accept       json
// @Produce      json
// @Param        codigo  path  string  true  "Código do acumulador"
// @Param        body    body  dto.UpdateAcumuladorRequest  true  "Novos dados"
// @Success      200  {object}  dto.AcumuladorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acumuladores/{codigo} [put]
func (h *AcumuladorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAcumuladorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("codigo"), in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover acumulador
// @Tags         acumuladores
// @Produce      json
// @Param        codigo  path  string  true  "Código do acumulador"
// @Success      204  "Acumulador removido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Acumulador em uso por produtos"
// @Router       /api/acumuladores/{codigo} [delete]
func (h *AcumuladorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("codigo")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
