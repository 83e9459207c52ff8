// Package search: busca aproximada de acumuladores por descrição livre.
// Permite ao contador digitar "venda consumidor" e encontrar o acumulador
// VENDAS mesmo sem lembrar o código exato.
package search

import (
	"github.com/schollz/closestmatch"

	"github.com/contabilize/sped-fiscal-api/internal/domain/classificacao"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
)

// AcumuladorMatcher índice bag-of-words sobre as descrições dos
// acumuladores. O conjunto é pequeno (dezenas de entradas curadas à mão), por
// isso o índice é reconstruído a cada busca em vez de mantido em cache.
type AcumuladorMatcher struct{}

// NewAcumuladorMatcher constrói o matcher.
func NewAcumuladorMatcher() *AcumuladorMatcher {
	return &AcumuladorMatcher{}
}

// Buscar devolve até limite acumuladores cuja descrição mais se aproxima do
// termo, melhores primeiro. Termo e descrições passam pela mesma
// normalização do motor de classificação antes da comparação.
func (m *AcumuladorMatcher) Buscar(termo string, acumuladores []*entity.Acumulador, limite int) []*entity.Acumulador {
	if len(acumuladores) == 0 {
		return nil
	}

	porChave := make(map[string][]*entity.Acumulador, len(acumuladores))
	chaves := make([]string, 0, len(acumuladores))
	for _, a := range acumuladores {
		chave := classificacao.Normalizar(a.Descricao + " " + a.Codigo)
		if chave == "" {
			continue
		}
		if _, ok := porChave[chave]; !ok {
			chaves = append(chaves, chave)
		}
		porChave[chave] = append(porChave[chave], a)
	}
	if len(chaves) == 0 {
		return nil
	}

	cm := closestmatch.New(chaves, []int{3, 4})
	var encontrados []*entity.Acumulador
	for _, chave := range cm.ClosestN(classificacao.Normalizar(termo), limite) {
		for _, a := range porChave[chave] {
			if len(encontrados) == limite {
				return encontrados
			}
			encontrados = append(encontrados, a)
		}
	}
	return encontrados
}
