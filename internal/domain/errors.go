package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConflict        = errors.New("conflito com o estado atual")
	ErrCfopEmUso       = errors.New("CFOP possui acumuladores associados")
	ErrAcumuladorEmUso = errors.New("acumulador possui produtos associados")
)

// ProdutosSemAcumuladorError indica que relatórios não podem ser gerados
// enquanto houver produtos sem acumulador na competência.
type ProdutosSemAcumuladorError struct {
	Total   int
	Codigos []string // amostra dos códigos ofensores, já ordenada
}

func (e *ProdutosSemAcumuladorError) Error() string {
	msg := fmt.Sprintf("existem %d produto(s) sem acumulador; associe os acumuladores antes de gerar relatórios", e.Total)
	if len(e.Codigos) > 0 {
		msg += ": " + strings.Join(e.Codigos, ", ")
	}
	return msg
}
