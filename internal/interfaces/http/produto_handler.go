package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// ProdutoHandler trata o catálogo de produtos importados do SPED.
type ProdutoHandler struct {
	uc *usecase.ProdutoUseCase
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(uc *usecase.ProdutoUseCase) *ProdutoHandler {
	return &ProdutoHandler{uc: uc}
}

// List godoc
// @Summary      Listar produtos da empresa
// @Tags         produtos
// @Produce      json
// @Param        empresa_id  query  string  true   "ID da empresa"
// @Param        filtro      query  string  false  "cadastrados | naoCadastrados"
// @Param        busca       query  string  false  "Busca em código, descrição e NCM"
// @Param        page        query  int     false  "Página (padrão 1)"
// @Param        per_page    query  int     false  "Itens por página (padrão 50, máx 1000)"
// @Success      200  {object}  dto.ProdutoListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/produtos [get]
func (h *ProdutoHandler) List(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	page := dto.PageRequest{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 50),
	}
	out, err := h.uc.List(empresaID, c.Query("filtro"), c.Query("busca"), page)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Desativar godoc
// @Summary      Inativar produto (soft delete)
// @Tags         produtos
// @Produce      json
// @Param        codigo      path   string  true  "Código do item"
// @Param        empresa_id  query  string  true  "ID da empresa"
// @Success      204  "Produto inativado"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{codigo} [delete]
func (h *ProdutoHandler) Desativar(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	if err := h.uc.Desativar(empresaID, c.Params("codigo")); err != nil {
		return responderErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AtualizarAcumulador godoc
// @Summary      Classificar um produto manualmente
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AtualizarAcumuladorRequest  true  "Produto e acumulador"
// @Success      200  {object}  dto.ProdutoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/atualizar-acumulador [post]
func (h *ProdutoHandler) AtualizarAcumulador(c *fiber.Ctx) error {
	var in dto.AtualizarAcumuladorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AtualizarAcumulador(in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// AcumuladorEmMassa godoc
// @Summary      Classificar vários produtos com o mesmo acumulador
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcumuladorEmMassaRequest  true  "Códigos e acumulador"
// @Success      200  {object}  dto.AtualizacaoEmMassaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/produtos/acumulador-em-massa [post]
func (h *ProdutoHandler) AcumuladorEmMassa(c *fiber.Ctx) error {
	var in dto.AcumuladorEmMassaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AcumuladorEmMassa(in)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
