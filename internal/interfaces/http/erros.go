package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/sped"
)

// responderErro traduz erros de domínio para HTTP. Erros com código próprio
// permitem que a interface mostre uma ação específica (ex. "classifique os
// produtos pendentes") em vez de um aviso genérico.
func responderErro(c *fiber.Ctx, err error) error {
	var semAcumulador *domain.ProdutosSemAcumuladorError
	if errors.As(err, &semAcumulador) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "PRODUTOS_SEM_ACUMULADOR",
			Message: semAcumulador.Error(),
			Detalhes: fiber.Map{
				"total":   semAcumulador.Total,
				"codigos": semAcumulador.Codigos,
			},
		})
	}

	switch {
	case errors.Is(err, sped.ErrArquivoVazio):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ARQUIVO_VAZIO", Message: err.Error()})
	case errors.Is(err, sped.ErrCodificacao):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CODIFICACAO_INVALIDA", Message: err.Error()})
	case errors.Is(err, sped.ErrRegistro0000):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REGISTRO_0000_INVALIDO", Message: err.Error()})
	case errors.Is(err, sped.ErrSemMovimento):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SEM_MOVIMENTO", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrCfopEmUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CFOP_EM_USO", Message: err.Error()})
	case errors.Is(err, domain.ErrAcumuladorEmUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ACUMULADOR_EM_USO", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// semEmpresaID resposta padrão para chamadas sem o parâmetro empresa_id.
func semEmpresaID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "empresa_id é obrigatório",
	})
}
