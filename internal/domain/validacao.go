package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCfop             = regexp.MustCompile(`^[1-7]\d{3}$`)
	reCodigoAcumulador = regexp.MustCompile(`^[A-Z0-9_]{3,20}$`)
	reCompetencia      = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	reDigitos          = regexp.MustCompile(`\D`)
)

// ValidarCfop valida um código CFOP: 4 dígitos, primeiro entre 1 e 7.
func ValidarCfop(cfop string) error {
	if !reCfop.MatchString(strings.TrimSpace(cfop)) {
		return fmt.Errorf("%w: CFOP deve ter 4 dígitos iniciando em 1-7", ErrInvalidInput)
	}
	return nil
}

// ValidarCodigoAcumulador valida o código de acumulador: maiúsculas, dígitos
// e underscore, entre 3 e 20 caracteres.
func ValidarCodigoAcumulador(codigo string) error {
	if !reCodigoAcumulador.MatchString(strings.TrimSpace(codigo)) {
		return fmt.Errorf("%w: código de acumulador deve ter 3-20 caracteres (A-Z, 0-9, _)", ErrInvalidInput)
	}
	return nil
}

// ValidarDescricao valida descrições livres (acumuladores, CFOPs): 3 a 100 caracteres.
func ValidarDescricao(descricao string) error {
	d := strings.TrimSpace(descricao)
	if len(d) < 3 || len(d) > 100 {
		return fmt.Errorf("%w: descrição deve ter entre 3 e 100 caracteres", ErrInvalidInput)
	}
	return nil
}

// ValidarCompetencia valida o período no formato YYYY-MM, ano entre 2000 e 2050.
func ValidarCompetencia(competencia string) error {
	m := reCompetencia.FindStringSubmatch(strings.TrimSpace(competencia))
	if m == nil {
		return fmt.Errorf("%w: competência deve estar no formato YYYY-MM", ErrInvalidInput)
	}
	ano, _ := strconv.Atoi(m[1])
	mes, _ := strconv.Atoi(m[2])
	if ano < 2000 || ano > 2050 {
		return fmt.Errorf("%w: ano da competência fora do intervalo 2000-2050", ErrInvalidInput)
	}
	if mes < 1 || mes > 12 {
		return fmt.Errorf("%w: mês da competência fora do intervalo 01-12", ErrInvalidInput)
	}
	return nil
}

// SanitizarCNPJ remove tudo que não for dígito.
func SanitizarCNPJ(cnpj string) string {
	return reDigitos.ReplaceAllString(cnpj, "")
}

// SanitizarBusca remove caracteres perigosos de termos de busca livres.
func SanitizarBusca(termo string) string {
	t := strings.TrimSpace(termo)
	t = strings.NewReplacer("'", "", `"`, "", ";", "", "--", "", "\\", "").Replace(t)
	if len(t) > 100 {
		t = t[:100]
	}
	return t
}
