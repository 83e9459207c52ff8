package sped_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabilize/sped-fiscal-api/internal/domain/sped"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestParse_ArquivoCompleto valida a leitura de um arquivo SPED mínimo porém
// realista: registro 0000, catálogo 0200, um C100 de saída com dois C170 e o
// analítico C190.
//
// O vetor cobre as convenções do layout que mais quebram em produção:
//
//	datas DDMMYYYY            -> 15072023 = 15/07/2023
//	decimais com vírgula      -> 140,00 / 1.234,56
//	valor unitário derivado   -> valor do item / quantidade
//	valor total do item       -> valor do item - desconto
// ──────────────────────────────────────────────────────────────────────────────

const arquivoCompleto = `
|0000|017|0|01072023|31072023|EMPRESA TESTE LTDA|12345678000199||SP|110042490114|
|0150|CLI001|CLIENTE EXEMPLO|1058|12345678000255|||3550308|||
|0200|001|Parafuso 10mm|||UN|00|73181500||18,00|
|0200|002|Porca M8|||UN|00|73181600||18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|250,00|0|
|C170|1|001|Parafuso 10mm|10,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
|C170|2|002|Porca M8|20,000|UN|140,00|10,00|0|000|5102|NAT|130,00|23,40|18,00|
|C190|000|5102|18,00|250,00|230,00|41,40|0,00|0,00|0,00||
|9999|9|
`

func TestParse_ArquivoCompleto(t *testing.T) {
	arq, err := sped.NewParser().Parse(strings.NewReader(arquivoCompleto))
	require.NoError(t, err, "arquivo válido não deve retornar erro fatal")
	require.NotNil(t, arq)
	assert.Empty(t, arq.Erros, "arquivo válido não deve coletar erros de linha")

	// Contribuinte (0000)
	assert.Equal(t, "12345678000199", arq.Contribuinte.CNPJ)
	assert.Equal(t, "EMPRESA TESTE LTDA", arq.Contribuinte.RazaoSocial)
	assert.Equal(t, "SP", arq.Contribuinte.UF)
	assert.Equal(t, "110042490114", arq.Contribuinte.InscricaoEstadual)
	assert.Equal(t, "2023-07-01", arq.Contribuinte.DtIni.Format("2006-01-02"))
	assert.Equal(t, "2023-07-31", arq.Contribuinte.DtFin.Format("2006-01-02"))

	// Catálogo (0200)
	require.Len(t, arq.Produtos, 2)
	assert.Equal(t, "001", arq.Produtos[0].CodigoItem)
	assert.Equal(t, "Parafuso 10mm", arq.Produtos[0].Descricao)
	assert.Equal(t, "UN", arq.Produtos[0].Unidade)
	assert.Equal(t, "73181500", arq.Produtos[0].NCM)

	// Documento de saída (C100)
	require.Len(t, arq.Documentos, 1)
	doc := arq.Documentos[0]
	assert.Equal(t, "123", doc.NumDocumento)
	assert.Equal(t, "1", doc.Serie)
	assert.Equal(t, "2023-07-15", doc.Data.Format("2006-01-02"))
	assertDecimal(t, "250", doc.ValorTotal, "valor total do documento")
	assert.Equal(t, "0", doc.IndPagamento, "ind_pgto 0 = à vista")

	// Itens (C170)
	require.Len(t, arq.Vendas, 2)
	v1 := arq.Vendas[0]
	assert.Equal(t, "001", v1.CodigoItem)
	assert.Equal(t, "123", v1.NumDocumento)
	assertDecimal(t, "10", v1.Quantidade, "quantidade do item 1")
	assertDecimal(t, "10", v1.ValorUnitario, "valor unitário = 100 / 10")
	assertDecimal(t, "100", v1.ValorTotal, "valor total do item 1")
	assertDecimal(t, "100", v1.BaseICMS, "base ICMS do item 1")
	assertDecimal(t, "18", v1.ValorICMS, "valor ICMS do item 1")
	assertDecimal(t, "18", v1.AliquotaICMS, "alíquota ICMS do item 1")

	v2 := arq.Vendas[1]
	assertDecimal(t, "7", v2.ValorUnitario, "valor unitário = 140 / 20")
	assertDecimal(t, "130", v2.ValorTotal, "valor total = 140 - 10 de desconto")
	assertDecimal(t, "10", v2.ValorDesconto, "desconto do item 2")

	// Analítico (C190)
	require.Len(t, arq.Apuracoes, 1)
	ap := arq.Apuracoes[0]
	assert.Equal(t, "5102", ap.Cfop)
	assert.Equal(t, "000", ap.CstICMS)
	assertDecimal(t, "250", ap.ValorOperacao, "valor da operação no C190")

	// Competência derivada das datas dos documentos
	assert.Equal(t, []string{"2023-07"}, arq.Competencias())
}

// TestParse_SeparadorDeMilhar garante que valores como 1.234,56 são lidos com
// ponto de milhar removido e vírgula como separador decimal.
func TestParse_SeparadorDeMilhar(t *testing.T) {
	conteudo := cabecalho + `
|C100|1|0|CLI001|55|00|1|500||20072023|20072023|1.234,56|1|
|C170|1|001|Item|1,000|UN|1.234,56|0,00|0|000|5102|NAT|1.234,56|222,22|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	require.Len(t, arq.Documentos, 1)
	assertDecimal(t, "1234.56", arq.Documentos[0].ValorTotal, "valor com separador de milhar")
	require.Len(t, arq.Vendas, 1)
	assertDecimal(t, "1234.56", arq.Vendas[0].ValorTotal, "item com separador de milhar")
}

// TestParse_IgnoraDocumentoDeEntrada verifica que C100 com ind_oper = 0
// (entrada) não gera documento e que seus C170 são pulados.
func TestParse_IgnoraDocumentoDeEntrada(t *testing.T) {
	conteudo := cabecalho + `
|C100|0|1|FORN01|55|00|2|987||10072023|10072023|999,99|2|
|C170|1|001|Compra|5,000|UN|50,00|0,00|0|000|1102|NAT|50,00|9,00|18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Venda|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	require.Len(t, arq.Documentos, 1, "apenas o documento de saída deve entrar")
	assert.Equal(t, "123", arq.Documentos[0].NumDocumento)
	require.Len(t, arq.Vendas, 1, "o item da nota de entrada deve ser ignorado")
	assertDecimal(t, "2", arq.Vendas[0].Quantidade, "item da venda de saída")
}

// TestParse_ItemSemDocumentoAberto verifica que um C170 antes de qualquer
// C100 de saída é ignorado sem erro.
func TestParse_ItemSemDocumentoAberto(t *testing.T) {
	conteudo := cabecalho + `
|C170|1|001|Solto|5,000|UN|50,00|0,00|0|000|5102|NAT|50,00|9,00|18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|002|Dentro|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	require.Len(t, arq.Vendas, 1)
	assert.Equal(t, "002", arq.Vendas[0].CodigoItem)
	assert.Empty(t, arq.Erros)
}

// TestParse_QuantidadeZeroIgnorada: itens com quantidade zero ou negativa não
// viram venda (divisão por zero no valor unitário).
func TestParse_QuantidadeZeroIgnorada(t *testing.T) {
	conteudo := cabecalho + `
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Zerado|0,000|UN|50,00|0,00|0|000|5102|NAT|50,00|9,00|18,00|
|C170|2|002|Valido|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	require.Len(t, arq.Vendas, 1)
	assert.Equal(t, "002", arq.Vendas[0].CodigoItem)
}

// TestParse_DeduplicaRegistros: blocos repetidos mantêm a posição da primeira
// ocorrência com o conteúdo da última.
func TestParse_DeduplicaRegistros(t *testing.T) {
	conteudo := cabecalho + `
|0200|001|Descricao antiga|||UN|00|73181500||18,00|
|0200|001|Descricao nova|||UN|00|73181500||18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|150,00|1|
|C170|1|001|Item|3,000|UN|150,00|0,00|0|000|5102|NAT|150,00|27,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)

	require.Len(t, arq.Produtos, 1, "produto repetido deve ser deduplicado")
	assert.Equal(t, "Descricao nova", arq.Produtos[0].Descricao, "a última ocorrência vence")

	require.Len(t, arq.Documentos, 1, "documento com mesmo número e série deve ser deduplicado")
	assertDecimal(t, "150", arq.Documentos[0].ValorTotal, "a última ocorrência do documento vence")

	require.Len(t, arq.Vendas, 1, "item com mesma chave documento+código deve ser deduplicado")
	assertDecimal(t, "3", arq.Vendas[0].Quantidade, "a última ocorrência do item vence")
}

// TestParse_ErroDeLinhaNaoInterrompe: uma linha estruturalmente inválida gera
// erro coletado e o restante do arquivo continua sendo lido.
func TestParse_ErroDeLinhaNaoInterrompe(t *testing.T) {
	conteudo := cabecalho + `
|C100|1|0|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err, "erro de linha não é fatal")
	require.Len(t, arq.Erros, 1)
	assert.Equal(t, 3, arq.Erros[0].Linha)
	assert.Equal(t, "C100", arq.Erros[0].Registro)
	assert.Contains(t, arq.Erros[0].String(), "Linha 3 (C100)")
	require.Len(t, arq.Documentos, 1)
	require.Len(t, arq.Vendas, 1)
}

// TestParse_DataInvalidaDescartaDocumento: data de emissão ilegível gera erro
// de linha e o bloco inteiro (documento + itens) é descartado.
func TestParse_DataInvalidaDescartaDocumento(t *testing.T) {
	conteudo := cabecalho + `
|C100|1|0|CLI001|55|00|1|999||99999999|15072023|100,00|0|
|C170|1|001|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|002|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	require.Len(t, arq.Erros, 1)
	assert.Contains(t, arq.Erros[0].Motivo, "data de emissão inválida")
	require.Len(t, arq.Documentos, 1)
	assert.Equal(t, "123", arq.Documentos[0].NumDocumento)
	require.Len(t, arq.Vendas, 1)
	assert.Equal(t, "002", arq.Vendas[0].CodigoItem)
}

// TestParse_CompetenciasMultiplas: documentos de meses distintos produzem
// competências distintas, em ordem crescente.
func TestParse_CompetenciasMultiplas(t *testing.T) {
	conteudo := cabecalho + `
|C100|1|0|CLI001|55|00|1|124||05082023|05082023|80,00|1|
|C170|1|001|Item|1,000|UN|80,00|0,00|0|000|5102|NAT|80,00|14,40|18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	arq, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-07", "2023-08"}, arq.Competencias())
}

// ── Erros fatais ──────────────────────────────────────────────────────────────

func TestParse_ArquivoVazio(t *testing.T) {
	_, err := sped.NewParser().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, sped.ErrArquivoVazio)
}

func TestParse_SemRegistro0000(t *testing.T) {
	conteudo := `
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
|C170|1|001|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
`
	_, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	assert.ErrorIs(t, err, sped.ErrRegistro0000, "sem 0000 a importação inteira falha")
}

func TestParse_Registro0000ComCNPJInvalido(t *testing.T) {
	conteudo := `
|0000|017|0|01072023|31072023|EMPRESA TESTE LTDA|123||SP|110042490114|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|
`
	_, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	assert.ErrorIs(t, err, sped.ErrRegistro0000, "0000 com CNPJ inválido equivale a cabeçalho ausente")
}

func TestParse_SemMovimentoDeSaida(t *testing.T) {
	conteudo := cabecalho + `
|0200|001|Parafuso 10mm|||UN|00|73181500||18,00|
`
	_, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	assert.ErrorIs(t, err, sped.ErrSemMovimento)
}

func TestParse_CodificacaoComBytesNulos(t *testing.T) {
	conteudo := "|\x000\x000\x000\x000|"
	_, err := sped.NewParser().Parse(strings.NewReader(conteudo))
	assert.ErrorIs(t, err, sped.ErrCodificacao, "bytes nulos indicam UTF-16, não suportado")
}

// TestParse_Latin1Decodificado: arquivos ISO-8859-1 (ERPs antigos) têm os
// acentos convertidos para UTF-8 na leitura.
func TestParse_Latin1Decodificado(t *testing.T) {
	conteudo := strings.TrimSpace(cabecalho) + "\n" +
		"|0200|003|PARAFUSO M\xc9DIO|||UN|00|73181500||18,00|\n" +
		"|C100|1|0|CLI001|55|00|1|123||15072023|15072023|100,00|0|\n" +
		"|C170|1|003|Item|2,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|\n"

	arq, err := sped.NewParser().Parse(bytes.NewReader([]byte(conteudo)))
	require.NoError(t, err)
	require.Len(t, arq.Produtos, 1)
	assert.Equal(t, "PARAFUSO MÉDIO", arq.Produtos[0].Descricao, "É em ISO-8859-1 deve virar UTF-8")
}

// ── helpers ───────────────────────────────────────────────────────────────────

const cabecalho = `
|0000|017|0|01072023|31072023|EMPRESA TESTE LTDA|12345678000199||SP|110042490114|`

func assertDecimal(t *testing.T, esperado string, obtido decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, obtido.Equal(decimal.RequireFromString(esperado)),
		"%s: esperado %s, obtido %s", msg, esperado, obtido)
}
