// Package classificacao: motor de classificação de produtos por similaridade
// textual. Sugere acumuladores para produtos não classificados a partir dos já
// classificados e aponta pares classificados de forma divergente. Puro: não
// acessa banco nem altera estado; quem aplica uma sugestão é o chamador.
package classificacao

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Limites de pontuação do reforço por NCM.
const (
	reforcoNcmExato   = 30 // NCM idêntico
	reforcoNcmPrefixo = 15 // mesmos 4 primeiros dígitos
	pisoTokensComuns  = 70 // piso quando há sobreposição forte de palavras
)

// Options parametriza o motor. Limiares em pontos percentuais (1-100).
type Options struct {
	LimiarSugestao       int // similaridade mínima para sugerir
	LimiarInconsistencia int // similaridade mínima para apontar divergência
	MaxReferencias       int // teto de produtos classificados considerados
	MaxInconsistencias   int // teto do resultado de Inconsistencias
	Paralelismo          int // goroutines simultâneas; <= 0 usa NumCPU
}

// Produto candidato a classificação (ainda sem acumulador).
type Produto struct {
	CodigoItem string
	Descricao  string
	NCM        string
}

// Referencia produto já classificado, usado como base de comparação.
type Referencia struct {
	CodigoItem string
	Descricao  string
	NCM        string
	Acumulador string
}

// Sugestao proposta de acumulador para um produto, com o grau de similaridade
// (0-100) e o motivo legível exibido ao contador.
type Sugestao struct {
	CodigoItem         string
	Descricao          string
	NCM                string
	AcumuladorSugerido string
	Similaridade       int
	Motivo             string
}

// ProdutoInconsistente lado de um par divergente.
type ProdutoInconsistente struct {
	CodigoItem string
	Descricao  string
	Acumulador string
}

// Inconsistencia par de produtos muito parecidos classificados em
// acumuladores diferentes. ProdutoA carrega sempre o menor código.
type Inconsistencia struct {
	ProdutoA     ProdutoInconsistente
	ProdutoB     ProdutoInconsistente
	Similaridade int
	NcmIgual     bool
}

// Engine executa as análises de sugestão e inconsistência.
type Engine struct {
	opt Options
}

// NewEngine valida os limiares e cria o motor. Limiar fora de 1-100 é erro de
// programação, não de entrada.
func NewEngine(opt Options) (*Engine, error) {
	if opt.LimiarSugestao < 1 || opt.LimiarSugestao > 100 {
		return nil, fmt.Errorf("classificacao: limiar de sugestão fora do intervalo 1-100: %d", opt.LimiarSugestao)
	}
	if opt.LimiarInconsistencia < 1 || opt.LimiarInconsistencia > 100 {
		return nil, fmt.Errorf("classificacao: limiar de inconsistência fora do intervalo 1-100: %d", opt.LimiarInconsistencia)
	}
	if opt.MaxReferencias <= 0 {
		opt.MaxReferencias = 2000
	}
	if opt.MaxInconsistencias <= 0 {
		opt.MaxInconsistencias = 100
	}
	if opt.Paralelismo <= 0 {
		opt.Paralelismo = runtime.NumCPU()
	}
	return &Engine{opt: opt}, nil
}

// Sugerir compara cada produto não classificado com todas as referências e
// devolve no máximo uma sugestão por produto: a do melhor vizinho cujo score
// alcance o limiar. Empates são resolvidos pelo menor código de referência.
// A ordem de entrada dos produtos é preservada na saída.
func (e *Engine) Sugerir(produtos []Produto, referencias []Referencia) []Sugestao {
	if len(produtos) == 0 || len(referencias) == 0 {
		return nil
	}
	if len(referencias) > e.opt.MaxReferencias {
		referencias = referencias[:e.opt.MaxReferencias]
	}
	refs := normalizarReferencias(referencias)

	resultados := make([]*Sugestao, len(produtos))
	var g errgroup.Group
	g.SetLimit(e.opt.Paralelismo)
	for i := range produtos {
		g.Go(func() error {
			resultados[i] = e.melhorSugestao(produtos[i], refs)
			return nil
		})
	}
	_ = g.Wait() // os workers não retornam erro

	sugestoes := make([]Sugestao, 0, len(produtos))
	for _, s := range resultados {
		if s != nil {
			sugestoes = append(sugestoes, *s)
		}
	}
	return sugestoes
}

func (e *Engine) melhorSugestao(p Produto, refs []referenciaNormalizada) *Sugestao {
	descNorm := Normalizar(p.Descricao)
	tokensProduto := tokens(descNorm)
	ncmProduto := somenteDigitos(p.NCM)

	melhorScore := -1
	var melhor *referenciaNormalizada
	for i := range refs {
		ref := &refs[i]
		score := ratioNormalizado(descNorm, ref.descNorm)
		if score < pisoTokensComuns && sobreposicaoForte(tokensProduto, ref.tokens) {
			score = pisoTokensComuns
		}
		if len(ncmProduto) >= 4 && len(ref.ncm) >= 4 {
			switch {
			case ncmProduto == ref.ncm:
				score += reforcoNcmExato
			case ncmProduto[:4] == ref.ncm[:4]:
				score += reforcoNcmPrefixo
			}
		}
		if score > melhorScore || (score == melhorScore && melhor != nil && ref.CodigoItem < melhor.CodigoItem) {
			melhorScore = score
			melhor = ref
		}
	}
	if melhor == nil || melhorScore < e.opt.LimiarSugestao {
		return nil
	}
	exibido := melhorScore
	if exibido > 100 {
		exibido = 100
	}
	return &Sugestao{
		CodigoItem:         p.CodigoItem,
		Descricao:          p.Descricao,
		NCM:                p.NCM,
		AcumuladorSugerido: melhor.Acumulador,
		Similaridade:       exibido,
		Motivo:             fmt.Sprintf("Similaridade (%d%%) com: %s", exibido, melhor.Descricao),
	}
}

// Inconsistencias varre pares de produtos classificados em busca de
// descrições quase idênticas com acumuladores diferentes. A busca é bloqueada
// por prefixo de 4 dígitos do NCM, uma aproximação: pares em blocos
// diferentes nunca são comparados. Cada par aparece uma única vez, com o
// menor código em ProdutoA; resultado ordenado por similaridade decrescente.
func (e *Engine) Inconsistencias(referencias []Referencia) []Inconsistencia {
	if len(referencias) < 2 {
		return nil
	}
	if len(referencias) > e.opt.MaxReferencias {
		referencias = referencias[:e.opt.MaxReferencias]
	}
	refs := normalizarReferencias(referencias)

	blocos := make(map[string][]referenciaNormalizada)
	for _, ref := range refs {
		chave := ref.ncm
		if len(chave) >= 4 {
			chave = chave[:4]
		}
		blocos[chave] = append(blocos[chave], ref)
	}

	var (
		mu       sync.Mutex
		achadas  []Inconsistencia
		g        errgroup.Group
	)
	g.SetLimit(e.opt.Paralelismo)
	for _, bloco := range blocos {
		g.Go(func() error {
			locais := e.compararBloco(bloco)
			if len(locais) > 0 {
				mu.Lock()
				achadas = append(achadas, locais...)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // os workers não retornam erro

	sort.Slice(achadas, func(i, j int) bool {
		if achadas[i].Similaridade != achadas[j].Similaridade {
			return achadas[i].Similaridade > achadas[j].Similaridade
		}
		if achadas[i].ProdutoA.CodigoItem != achadas[j].ProdutoA.CodigoItem {
			return achadas[i].ProdutoA.CodigoItem < achadas[j].ProdutoA.CodigoItem
		}
		return achadas[i].ProdutoB.CodigoItem < achadas[j].ProdutoB.CodigoItem
	})
	if len(achadas) > e.opt.MaxInconsistencias {
		achadas = achadas[:e.opt.MaxInconsistencias]
	}
	return achadas
}

func (e *Engine) compararBloco(bloco []referenciaNormalizada) []Inconsistencia {
	var locais []Inconsistencia
	for i := 0; i < len(bloco); i++ {
		for j := i + 1; j < len(bloco); j++ {
			a, b := &bloco[i], &bloco[j]
			if a.Acumulador == b.Acumulador {
				continue
			}
			sim := ratioNormalizado(a.descNorm, b.descNorm)
			if sim < e.opt.LimiarInconsistencia {
				continue
			}
			if b.CodigoItem < a.CodigoItem {
				a, b = b, a
			}
			locais = append(locais, Inconsistencia{
				ProdutoA:     ProdutoInconsistente{CodigoItem: a.CodigoItem, Descricao: a.Descricao, Acumulador: a.Acumulador},
				ProdutoB:     ProdutoInconsistente{CodigoItem: b.CodigoItem, Descricao: b.Descricao, Acumulador: b.Acumulador},
				Similaridade: sim,
				NcmIgual:     a.ncm == b.ncm,
			})
		}
	}
	return locais
}

// sobreposicaoForte detecta descrições que compartilham palavras relevantes:
// duas ou mais em comum, ou uma única com mais de 4 caracteres, cobrindo ao
// menos metade do menor conjunto.
func sobreposicaoForte(t1, t2 map[string]struct{}) bool {
	if len(t1) == 0 || len(t2) == 0 {
		return false
	}
	menor, maior := t1, t2
	if len(t2) < len(t1) {
		menor, maior = t2, t1
	}
	var comuns []string
	for tok := range menor {
		if _, ok := maior[tok]; ok {
			comuns = append(comuns, tok)
		}
	}
	switch {
	case len(comuns) >= 2:
	case len(comuns) == 1 && len(comuns[0]) > 4:
	default:
		return false
	}
	return float64(len(comuns))/float64(len(menor)) >= 0.5
}

type referenciaNormalizada struct {
	Referencia
	descNorm string
	tokens   map[string]struct{}
	ncm      string
}

func normalizarReferencias(referencias []Referencia) []referenciaNormalizada {
	refs := make([]referenciaNormalizada, len(referencias))
	for i, r := range referencias {
		descNorm := Normalizar(r.Descricao)
		refs[i] = referenciaNormalizada{
			Referencia: r,
			descNorm:   descNorm,
			tokens:     tokens(descNorm),
			ncm:        somenteDigitos(r.NCM),
		}
	}
	return refs
}
