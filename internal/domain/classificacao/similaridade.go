package classificacao

import (
	"regexp"
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNaoAlfanumerico = regexp.MustCompile(`[^A-Z0-9 ]+`)
	reEspacos         = regexp.MustCompile(`\s+`)

	removerAcentos = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
)

// Normalizar prepara descrições para comparação: maiúsculas, sem acentos,
// sem pontuação e com espaços colapsados. "Água c/ Gás" e "AGUA C GAS"
// normalizam para a mesma forma.
func Normalizar(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if t, _, err := transform.String(removerAcentos, s); err == nil {
		s = t
	}
	s = reNaoAlfanumerico.ReplaceAllString(s, " ")
	s = reEspacos.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Similaridade compara duas descrições e devolve um grau de 0 a 100.
// Simétrica e determinística: Similaridade(a, b) == Similaridade(b, a) e
// descrições idênticas após normalização valem 100.
func Similaridade(a, b string) int {
	return ratioNormalizado(Normalizar(a), Normalizar(b))
}

// ratioNormalizado opera sobre strings já normalizadas. O par é ordenado
// antes do cálculo para garantir a simetria do ratio.
func ratioNormalizado(na, nb string) int {
	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}
	if na > nb {
		na, nb = nb, na
	}
	return fuzzy.Ratio(na, nb)
}

// tokens devolve o conjunto de palavras da descrição normalizada.
func tokens(descNorm string) map[string]struct{} {
	palavras := strings.Fields(descNorm)
	set := make(map[string]struct{}, len(palavras))
	for _, p := range palavras {
		set[p] = struct{}{}
	}
	return set
}

// somenteDigitos reduz o NCM aos dígitos, descartando máscaras como 7318.15.00.
func somenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
