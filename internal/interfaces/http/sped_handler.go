package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	appsped "github.com/contabilize/sped-fiscal-api/internal/application/sped"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// SpedHandler trata a importação de arquivos SPED Fiscal e as estatísticas
// da base importada.
type SpedHandler struct {
	uc          *appsped.ImportUseCase
	relatorios  *usecase.RelatorioUseCase
	maxUploadMB int
}

// NewSpedHandler constrói o handler.
func NewSpedHandler(uc *appsped.ImportUseCase, relatorios *usecase.RelatorioUseCase, maxUploadMB int) *SpedHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 16
	}
	return &SpedHandler{uc: uc, relatorios: relatorios, maxUploadMB: maxUploadMB}
}

// Importar godoc
// @Summary      Importar arquivo SPED Fiscal (EFD ICMS/IPI)
// @Tags         sped
// @Accept       multipart/form-data
// @Produce      json
// @Param        arquivo  formData  file  true  "Arquivo .txt do SPED Fiscal"
// @Success      200  {object}  dto.ImportacaoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/sped/importar [post]
func (h *SpedHandler) Importar(c *fiber.Ctx) error {
	fh, err := c.FormFile("arquivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "campo multipart 'arquivo' é obrigatório",
		})
	}
	if max := int64(h.maxUploadMB) << 20; fh.Size > max {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "ARQUIVO_GRANDE",
			Message: fmt.Sprintf("arquivo excede o limite de %d MB", h.maxUploadMB),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "não foi possível ler o arquivo enviado",
		})
	}
	defer f.Close()

	out, err := h.uc.Importar(c.Context(), f, fh.Filename)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}

// Estatisticas godoc
// @Summary      Visão geral dos dados importados da empresa
// @Tags         sped
// @Produce      json
// @Param        empresa_id  query  string  true  "ID da empresa"
// @Success      200  {object}  dto.EstatisticasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sped/estatisticas [get]
func (h *SpedHandler) Estatisticas(c *fiber.Ctx) error {
	empresaID := c.Query("empresa_id")
	if empresaID == "" {
		return semEmpresaID(c)
	}
	out, err := h.relatorios.Estatisticas(empresaID)
	if err != nil {
		return responderErro(c, err)
	}
	return c.JSON(out)
}
