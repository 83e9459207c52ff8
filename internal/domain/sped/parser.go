// Package sped: leitor do arquivo EFD ICMS/IPI (SPED Fiscal), layout de campos
// delimitados por pipe. Extrai o contribuinte (registro 0000), o catálogo de
// produtos (0200), os documentos fiscais de saída (C100), seus itens (C170) e
// o registro analítico por CFOP (C190). Nenhuma persistência acontece aqui.
package sped

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Códigos de registro tratados; os demais são ignorados sem erro.
const (
	Reg0000 = "0000"
	Reg0200 = "0200"
	RegC100 = "C100"
	RegC170 = "C170"
	RegC190 = "C190"
)

// Erros fatais de importação: nada deve ser persistido quando ocorrem.
var (
	ErrArquivoVazio = errors.New("sped: arquivo vazio")
	ErrCodificacao  = errors.New("sped: codificação não suportada (bytes nulos no conteúdo, provável UTF-16)")
	ErrRegistro0000 = errors.New("sped: registro 0000 ausente ou inválido")
	ErrSemMovimento = errors.New("sped: nenhum documento fiscal de saída ou item de venda válido encontrado")
)

// Contribuinte dados do registro 0000.
type Contribuinte struct {
	CNPJ              string // somente dígitos
	RazaoSocial       string
	InscricaoEstadual string
	UF                string
	DtIni             time.Time
	DtFin             time.Time
}

// Produto item do catálogo (registro 0200).
type Produto struct {
	CodigoItem string
	Descricao  string
	Unidade    string
	NCM        string
}

// Documento nota fiscal de saída (registro C100 com ind_oper = 1).
type Documento struct {
	NumDocumento string
	Serie        string
	Data         time.Time
	ValorTotal   decimal.Decimal
	IndPagamento string
}

// Venda item de documento (registro C170). NumDocumento e Serie ligam o item
// ao C100 aberto no momento da leitura.
type Venda struct {
	NumDocumento  string
	Serie         string
	CodigoItem    string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
	ValorDesconto decimal.Decimal
	BaseICMS      decimal.Decimal
	ValorICMS     decimal.Decimal
	AliquotaICMS  decimal.Decimal
}

// Apuracao total analítico por CST/CFOP/alíquota (registro C190).
type Apuracao struct {
	NumDocumento  string
	Serie         string
	CstICMS       string
	Cfop          string
	AliquotaICMS  decimal.Decimal
	ValorOperacao decimal.Decimal
	BaseICMS      decimal.Decimal
	ValorICMS     decimal.Decimal
}

// ErroRegistro erro de linha coletado durante a leitura; não interrompe o
// processamento das demais linhas.
type ErroRegistro struct {
	Linha    int
	Registro string
	Motivo   string
}

func (e ErroRegistro) String() string {
	return fmt.Sprintf("Linha %d (%s): %s", e.Linha, e.Registro, e.Motivo)
}

// Arquivo resultado da leitura completa, já deduplicado.
type Arquivo struct {
	Contribuinte Contribuinte
	Produtos     []Produto
	Documentos   []Documento
	Vendas       []Venda
	Apuracoes    []Apuracao
	Erros        []ErroRegistro
	Registros    map[string]int // linhas lidas por código de registro
}

// Competencias devolve os períodos YYYY-MM distintos dos documentos, em ordem
// crescente. Define o escopo de substituição na importação.
func (a *Arquivo) Competencias() []string {
	vistos := make(map[string]struct{})
	var out []string
	for _, d := range a.Documentos {
		c := d.Data.Format("2006-01")
		if _, ok := vistos[c]; !ok {
			vistos[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Parser lê arquivos SPED Fiscal.
type Parser struct{}

// NewParser cria o parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse lê o conteúdo completo e devolve o arquivo normalizado. Erros de
// linha são coletados em Arquivo.Erros; só codificação inválida, ausência do
// registro 0000 ou ausência de movimento de saída abortam a leitura.
func (p *Parser) Parse(r io.Reader) (*Arquivo, error) {
	src, err := decodificar(r)
	if err != nil {
		return nil, err
	}

	arq := &Arquivo{Registros: make(map[string]int)}

	// Estado do bloco C100 corrente: C170/C190 só valem dentro de um
	// documento de saída aberto.
	var (
		temHeader  bool
		docAberto  bool
		numAtual   string
		serieAtual string
	)

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	linha := 0
	for sc.Scan() {
		linha++
		texto := strings.TrimSpace(sc.Text())
		if texto == "" {
			continue
		}
		campos := strings.Split(texto, "|")
		if len(campos) < 2 {
			continue
		}
		registro := campos[1]

		switch registro {
		case Reg0000:
			arq.Registros[registro]++
			if len(campos) < 11 {
				arq.colecionarErro(linha, registro, "campos insuficientes")
				continue
			}
			contrib, err := lerContribuinte(campos)
			if err != nil {
				arq.colecionarErro(linha, registro, err.Error())
				continue
			}
			arq.Contribuinte = contrib
			temHeader = true

		case Reg0200:
			arq.Registros[registro]++
			if len(campos) < 9 {
				arq.colecionarErro(linha, registro, "campos insuficientes")
				continue
			}
			codigo := strings.TrimSpace(campos[2])
			descricao := strings.TrimSpace(campos[3])
			unidade := strings.TrimSpace(campos[6])
			if codigo == "" || descricao == "" || unidade == "" {
				continue
			}
			arq.Produtos = append(arq.Produtos, Produto{
				CodigoItem: codigo,
				Descricao:  descricao,
				Unidade:    unidade,
				NCM:        strings.TrimSpace(campos[8]),
			})

		case RegC100:
			arq.Registros[registro]++
			docAberto = false
			if len(campos) < 14 {
				arq.colecionarErro(linha, registro, "campos insuficientes")
				continue
			}
			// Só notas de saída (ind_oper = 1) com data de emissão entram;
			// qualquer outro C100 fecha o bloco e os C170 seguintes são pulados.
			if strings.TrimSpace(campos[2]) != "1" || strings.TrimSpace(campos[10]) == "" {
				continue
			}
			num := strings.TrimSpace(campos[8])
			if num == "" {
				continue
			}
			serie := strings.TrimSpace(campos[7])
			if serie == "" {
				serie = "1"
			}
			data, err := parseData(campos[10])
			if err != nil {
				arq.colecionarErro(linha, registro, "data de emissão inválida: "+strings.TrimSpace(campos[10]))
				continue
			}
			arq.Documentos = append(arq.Documentos, Documento{
				NumDocumento: num,
				Serie:        serie,
				Data:         data,
				ValorTotal:   parseDecimal(campos[12]),
				IndPagamento: strings.TrimSpace(campos[13]),
			})
			docAberto = true
			numAtual = num
			serieAtual = serie

		case RegC170:
			arq.Registros[registro]++
			if !docAberto {
				continue
			}
			if len(campos) < 8 {
				arq.colecionarErro(linha, registro, "campos insuficientes")
				continue
			}
			codigo := strings.TrimSpace(campos[3])
			if codigo == "" {
				continue
			}
			quantidade := parseDecimal(campos[5])
			if quantidade.Sign() <= 0 {
				continue
			}
			valorItem := parseDecimal(campos[7])
			desconto := parseDecimal(campo(campos, 8))
			arq.Vendas = append(arq.Vendas, Venda{
				NumDocumento:  numAtual,
				Serie:         serieAtual,
				CodigoItem:    codigo,
				Quantidade:    quantidade,
				ValorUnitario: valorItem.Div(quantidade),
				ValorTotal:    valorItem.Sub(desconto),
				ValorDesconto: desconto,
				BaseICMS:      parseDecimal(campo(campos, 13)),
				ValorICMS:     parseDecimal(campo(campos, 14)),
				AliquotaICMS:  parseDecimal(campo(campos, 15)),
			})

		case RegC190:
			arq.Registros[registro]++
			if !docAberto {
				continue
			}
			if len(campos) < 8 {
				arq.colecionarErro(linha, registro, "campos insuficientes")
				continue
			}
			arq.Apuracoes = append(arq.Apuracoes, Apuracao{
				NumDocumento:  numAtual,
				Serie:         serieAtual,
				CstICMS:       strings.TrimSpace(campos[2]),
				Cfop:          strings.TrimSpace(campos[3]),
				AliquotaICMS:  parseDecimal(campos[4]),
				ValorOperacao: parseDecimal(campos[5]),
				BaseICMS:      parseDecimal(campos[6]),
				ValorICMS:     parseDecimal(campos[7]),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sped: ler arquivo: %w", err)
	}

	if !temHeader {
		return nil, ErrRegistro0000
	}
	if len(arq.Documentos) == 0 && len(arq.Vendas) == 0 {
		return nil, ErrSemMovimento
	}

	arq.deduplicar()
	return arq, nil
}

func (a *Arquivo) colecionarErro(linha int, registro, motivo string) {
	a.Erros = append(a.Erros, ErroRegistro{Linha: linha, Registro: registro, Motivo: motivo})
}

// deduplicar remove repetições mantendo a posição da primeira ocorrência e o
// conteúdo da última, como faz a reimportação de blocos duplicados.
func (a *Arquivo) deduplicar() {
	a.Produtos = dedup(a.Produtos, func(p Produto) string { return p.CodigoItem })
	a.Documentos = dedup(a.Documentos, func(d Documento) string { return d.NumDocumento + "|" + d.Serie })
	a.Vendas = dedup(a.Vendas, func(v Venda) string {
		return v.NumDocumento + "|" + v.Serie + "|" + v.CodigoItem
	})
	a.Apuracoes = dedup(a.Apuracoes, func(ap Apuracao) string {
		return ap.NumDocumento + "|" + ap.Serie + "|" + ap.CstICMS + "|" + ap.Cfop + "|" + ap.AliquotaICMS.String()
	})
}

func dedup[T any](itens []T, chave func(T) string) []T {
	if len(itens) == 0 {
		return itens
	}
	pos := make(map[string]int, len(itens))
	out := itens[:0:0]
	for _, item := range itens {
		k := chave(item)
		if i, ok := pos[k]; ok {
			out[i] = item
			continue
		}
		pos[k] = len(out)
		out = append(out, item)
	}
	return out
}

// decodificar inspeciona o início do conteúdo: bytes nulos indicam UTF-16
// (não suportado); conteúdo que não for UTF-8 válido é decodificado como
// ISO-8859-1, a codificação usual dos arquivos gerados por ERPs antigos.
func decodificar(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	cabeca, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sped: ler cabeçalho: %w", err)
	}
	if len(cabeca) == 0 {
		return nil, ErrArquivoVazio
	}
	if bytes.IndexByte(cabeca, 0x00) >= 0 {
		return nil, ErrCodificacao
	}
	// O Peek pode ter cortado uma runa multibyte na borda da janela.
	valido := cabeca
	for i := 0; i < 3 && len(valido) > 0 && !utf8.Valid(valido); i++ {
		valido = valido[:len(valido)-1]
	}
	if utf8.Valid(valido) {
		return br, nil
	}
	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
}

func lerContribuinte(campos []string) (Contribuinte, error) {
	cnpj := somenteDigitos(campos[7])
	if len(cnpj) != 14 {
		return Contribuinte{}, fmt.Errorf("CNPJ inválido: %q", strings.TrimSpace(campos[7]))
	}
	dtIni, err := parseData(campos[4])
	if err != nil {
		return Contribuinte{}, fmt.Errorf("data inicial inválida: %q", strings.TrimSpace(campos[4]))
	}
	dtFin, err := parseData(campos[5])
	if err != nil {
		return Contribuinte{}, fmt.Errorf("data final inválida: %q", strings.TrimSpace(campos[5]))
	}
	return Contribuinte{
		CNPJ:              cnpj,
		RazaoSocial:       strings.TrimSpace(campos[6]),
		InscricaoEstadual: strings.TrimSpace(campos[10]),
		UF:                strings.TrimSpace(campos[9]),
		DtIni:             dtIni,
		DtFin:             dtFin,
	}, nil
}

// campo acesso seguro: devolve vazio quando o índice não existe na linha.
func campo(campos []string, i int) string {
	if i >= len(campos) {
		return ""
	}
	return campos[i]
}

// parseData converte datas DDMMYYYY do layout SPED.
func parseData(s string) (time.Time, error) {
	return time.Parse("02012006", strings.TrimSpace(s))
}

// parseDecimal converte valores do layout SPED: vírgula como separador
// decimal, ponto como separador de milhar. Vazio ou inválido vira zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func somenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
