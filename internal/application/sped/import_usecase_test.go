package sped_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsped "github.com/contabilize/sped-fiscal-api/internal/application/sped"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
	domsped "github.com/contabilize/sped-fiscal-api/internal/domain/sped"
	"github.com/contabilize/sped-fiscal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Os testes da importação rodam contra um banco em memória que honra os
// contratos dos repositórios: Upsert de produto preserva acumulador e ativo,
// DeleteByCompetencias remove documentos por período YYYY-MM e vendas e
// apurações caem em cascata. É o suficiente para exercitar as propriedades
// que importam: atomicidade da substituição, idempotência da reimportação e
// preservação da classificação feita pelo contador.
// ──────────────────────────────────────────────────────────────────────────────

const arquivoJulho = `
|0000|017|0|01072023|31072023|EMPRESA TESTE LTDA|12345678000199||SP|110042490114|
|0200|001|Parafuso 10mm|||UN|00|73181500||18,00|
|0200|002|Porca M8|||UN|00|73181600||18,00|
|C100|1|0|CLI001|55|00|1|123||15072023|15072023|250,00|0|
|C170|1|001|Parafuso 10mm|10,000|UN|100,00|0,00|0|000|5102|NAT|100,00|18,00|18,00|
|C170|2|002|Porca M8|20,000|UN|140,00|10,00|0|000|5102|NAT|130,00|23,40|18,00|
|C190|000|5102|18,00|250,00|230,00|41,40|0,00|0,00|0,00||
|9999|8|
`

const arquivoSemMovimento = `
|0000|017|0|01072023|31072023|EMPRESA TESTE LTDA|12345678000199||SP|110042490114|
|0200|001|Parafuso 10mm|||UN|00|73181500||18,00|
|9999|3|
`

func TestImportar_ArquivoCompleto(t *testing.T) {
	store := newStore()
	uc := newImportUC(store)

	out, err := uc.Importar(context.Background(), strings.NewReader(arquivoJulho), "julho.txt")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "12345678000199", out.Empresa.CNPJ)
	assert.Equal(t, "EMPRESA TESTE LTDA", out.Empresa.RazaoSocial)
	assert.Equal(t, []string{"2023-07"}, out.Competencias)
	assert.Equal(t, 2, out.Produtos)
	assert.Equal(t, 1, out.Documentos)
	assert.Equal(t, 2, out.Vendas)
	assert.Equal(t, 1, out.Apuracoes)
	assert.Empty(t, out.Avisos)

	assert.Len(t, store.produtos, 2)
	assert.Len(t, store.documentos, 1)
	assert.Len(t, store.vendas, 2)
	assert.Len(t, store.apuracoes, 1)

	// Vendas herdam a data e o ID do documento correspondente.
	for _, v := range store.vendas {
		assert.Equal(t, "2023-07-15", v.Data.Format("2006-01-02"))
		_, ok := store.documentos[v.DocumentoID]
		assert.True(t, ok, "venda deve referenciar um documento persistido")
	}
}

// TestImportar_Reimportacao: importar o mesmo arquivo duas vezes substitui a
// competência em vez de duplicá-la, e a classificação manual feita entre as
// duas importações sobrevive.
func TestImportar_Reimportacao(t *testing.T) {
	store := newStore()
	uc := newImportUC(store)

	_, err := uc.Importar(context.Background(), strings.NewReader(arquivoJulho), "julho.txt")
	require.NoError(t, err)

	// O contador classifica um produto entre as duas importações.
	empresa := store.empresaPorCNPJ("12345678000199")
	require.NotNil(t, empresa)
	store.produtos[empresa.ID+"|001"].Acumulador = "VENDAS"

	out, err := uc.Importar(context.Background(), strings.NewReader(arquivoJulho), "julho.txt")
	require.NoError(t, err)

	assert.Len(t, store.documentos, 1, "reimportação não duplica documentos")
	assert.Len(t, store.vendas, 2, "reimportação não duplica vendas")
	assert.Len(t, store.apuracoes, 1, "reimportação não duplica apurações")
	assert.Equal(t, "VENDAS", store.produtos[empresa.ID+"|001"].Acumulador,
		"reimportar o catálogo preserva o acumulador atribuído")
	assert.Equal(t, empresa.ID, out.Empresa.ID, "empresa é reaproveitada pelo CNPJ")
}

func TestImportar_SemMovimento(t *testing.T) {
	store := newStore()
	uc := newImportUC(store)

	_, err := uc.Importar(context.Background(), strings.NewReader(arquivoSemMovimento), "vazio.txt")
	require.ErrorIs(t, err, domsped.ErrSemMovimento)

	assert.Empty(t, store.empresas, "erro fatal não persiste nada")
	assert.Empty(t, store.produtos)
}

func TestImportar_ArquivoVazio(t *testing.T) {
	uc := newImportUC(newStore())

	_, err := uc.Importar(context.Background(), strings.NewReader(""), "vazio.txt")
	require.ErrorIs(t, err, domsped.ErrArquivoVazio)
}

func newImportUC(store *memStore) *appsped.ImportUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return appsped.NewImportUseCase(domsped.NewParser(), &memTxRunner{store: store}, log)
}

// ── Banco em memória ──────────────────────────────────────────────────────────

type memStore struct {
	empresas   map[string]*entity.Empresa // por ID
	produtos   map[string]*entity.Produto // por empresaID|codigoItem
	documentos map[string]*entity.DocumentoFiscal
	vendas     []*entity.Venda
	apuracoes  []*entity.ApuracaoCfop
}

func newStore() *memStore {
	return &memStore{
		empresas:   make(map[string]*entity.Empresa),
		produtos:   make(map[string]*entity.Produto),
		documentos: make(map[string]*entity.DocumentoFiscal),
	}
}

func (s *memStore) empresaPorCNPJ(cnpj string) *entity.Empresa {
	for _, e := range s.empresas {
		if e.CNPJ == cnpj {
			return e
		}
	}
	return nil
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	repository.EmpresaRepository,
	repository.ProdutoRepository,
	repository.DocumentoFiscalRepository,
	repository.VendaRepository,
	repository.ApuracaoCfopRepository,
) error) error {
	s := r.store
	return fn(&memEmpresaRepo{s}, &memProdutoRepo{s}, &memDocumentoRepo{s}, &memVendaRepo{s}, &memApuracaoRepo{s})
}

type memEmpresaRepo struct{ s *memStore }

func (r *memEmpresaRepo) Create(e *entity.Empresa) error {
	r.s.empresas[e.ID] = e
	return nil
}

func (r *memEmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	return r.s.empresas[id], nil
}

func (r *memEmpresaRepo) GetByCNPJ(cnpj string) (*entity.Empresa, error) {
	return r.s.empresaPorCNPJ(cnpj), nil
}

func (r *memEmpresaRepo) List() ([]*entity.Empresa, error) {
	out := make([]*entity.Empresa, 0, len(r.s.empresas))
	for _, e := range r.s.empresas {
		out = append(out, e)
	}
	return out, nil
}

type memProdutoRepo struct{ s *memStore }

func (r *memProdutoRepo) Upsert(p *entity.Produto) error {
	chave := p.EmpresaID + "|" + p.CodigoItem
	if existente, ok := r.s.produtos[chave]; ok {
		existente.DescricaoItem = p.DescricaoItem
		existente.Unidade = p.Unidade
		existente.NCM = p.NCM
		existente.DataAlteracao = p.DataAlteracao
		return nil
	}
	r.s.produtos[chave] = p
	return nil
}

func (r *memProdutoRepo) GetByCodigo(empresaID, codigoItem string) (*entity.Produto, error) {
	return r.s.produtos[empresaID+"|"+codigoItem], nil
}

func (r *memProdutoRepo) List(string, repository.FiltroProdutos) ([]*entity.Produto, int, error) {
	return nil, 0, nil
}

func (r *memProdutoRepo) ListSemAcumulador(string, int) ([]*entity.Produto, error) { return nil, nil }
func (r *memProdutoRepo) ListComAcumulador(string, int) ([]*entity.Produto, error) { return nil, nil }
func (r *memProdutoRepo) SetAcumulador(string, string, string) error               { return nil }
func (r *memProdutoRepo) Desativar(string, string) error                           { return nil }
func (r *memProdutoRepo) CountByAcumulador(string) (int, error)                    { return 0, nil }

type memDocumentoRepo struct{ s *memStore }

func (r *memDocumentoRepo) InsertMany(documentos []*entity.DocumentoFiscal) error {
	for _, d := range documentos {
		r.s.documentos[d.ID] = d
	}
	return nil
}

func (r *memDocumentoRepo) DeleteByCompetencias(empresaID string, competencias []string) (int64, error) {
	alvo := make(map[string]bool, len(competencias))
	for _, c := range competencias {
		alvo[c] = true
	}
	removidos := make(map[string]bool)
	var n int64
	for id, d := range r.s.documentos {
		if d.EmpresaID == empresaID && alvo[d.Data.Format("2006-01")] {
			delete(r.s.documentos, id)
			removidos[id] = true
			n++
		}
	}
	// Cascata: vendas e apurações dos documentos removidos.
	vendas := r.s.vendas[:0]
	for _, v := range r.s.vendas {
		if !removidos[v.DocumentoID] {
			vendas = append(vendas, v)
		}
	}
	r.s.vendas = vendas
	apuracoes := r.s.apuracoes[:0]
	for _, a := range r.s.apuracoes {
		if !removidos[a.DocumentoID] {
			apuracoes = append(apuracoes, a)
		}
	}
	r.s.apuracoes = apuracoes
	return n, nil
}

type memVendaRepo struct{ s *memStore }

func (r *memVendaRepo) InsertMany(vendas []*entity.Venda) error {
	r.s.vendas = append(r.s.vendas, vendas...)
	return nil
}

type memApuracaoRepo struct{ s *memStore }

func (r *memApuracaoRepo) InsertMany(apuracoes []*entity.ApuracaoCfop) error {
	r.s.apuracoes = append(r.s.apuracoes, apuracoes...)
	return nil
}
