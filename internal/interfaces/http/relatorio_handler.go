package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// RelatorioHandler trata os relatórios de vendas e apurações por CFOP.
// Todos os endpoints recebem empresa_id e, opcionalmente, competencia
// (YYYY-MM); sem competência o escopo é o histórico inteiro da empresa.
type RelatorioHandler struct {
	uc *usecase.RelatorioUseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *usecase.RelatorioUseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Resumo godoc
// @Summary      Resumo de vendas por condição de pagamento
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id   query  string  true   "ID da empresa"
// @Param        competencia  query  string  false  "Competência YYYY-MM"
// @Success      200  {object}  dto.ResumoVendasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "Produtos vendidos sem acumulador"
// @Router       /api/vendas [get]
func (h *RelatorioHandler) Resumo(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.Resumo(empresaID, c.Query("competencia"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// RelatorioVendas godoc
// @Summary      Relatório de vendas agrupado por acumulador e dia
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id   query  string  true   "ID da empresa"
// @Param        competencia  query  string  false  "Competência YYYY-MM"
// @Success      200  {object}  dto.RelatorioVendasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "Produtos vendidos sem acumulador"
// @Router       /api/relatorios/vendas [get]
func (h *RelatorioHandler) RelatorioVendas(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.RelatorioVendas(empresaID, c.Query("competencia"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// RelatorioVendasPDF godoc
// @Summary      Relatório de vendas em PDF
// @Tags         relatorios
// @Produce      application/pdf
// @Param        empresa_id   query  string  true   "ID da empresa"
// @Param        competencia  query  string  false  "Competência YYYY-MM"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "Produtos vendidos sem acumulador"
// @Router       /api/relatorios/vendas/pdf [get]
func (h *RelatorioHandler) RelatorioVendasPDF(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	pdf, nome, err := h.uc.RelatorioVendasPDF(empresaID, c.Query("competencia"))
	if err != nil {
		return responderErro(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nome))
	return c.Send(pdf)
}

// RelatorioCfop godoc
// @Summary      Totais de vendas por CFOP (derivados dos acumuladores)
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id   query  string  true   "ID da empresa"
// @Param        competencia  query  string  false  "Competência YYYY-MM"
// @Success      200  {object}  dto.RelatorioCfopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "Produtos vendidos sem acumulador"
// @Router       /api/relatorios/cfop [get]
func (h *RelatorioHandler) RelatorioCfop(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.RelatorioCfop(empresaID, c.Query("competencia"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// ApuracaoCfop godoc
// @Summary      Apuração por CFOP conforme declarado no C190
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id   query  string  true   "ID da empresa"
// @Param        competencia  query  string  false  "Competência YYYY-MM"
// @Success      200  {object}  dto.ApuracaoCfopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/apuracao-cfop [get]
func (h *RelatorioHandler) ApuracaoCfop(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.ApuracaoCfop(empresaID, c.Query("competencia"))
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Competencias godoc
// @Summary      Competências com movimento importado
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id  query  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompetenciasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/competencias [get]
func (h *RelatorioHandler) Competencias(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.uc.Competencias(empresaID)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
