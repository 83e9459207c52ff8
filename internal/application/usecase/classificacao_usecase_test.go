package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/classificacao"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
)

func newClassificacaoUC(t *testing.T) (*usecase.ClassificacaoUseCase, *stubProdutoRepo) {
	t.Helper()
	engine, err := classificacao.NewEngine(classificacao.Options{
		LimiarSugestao:       60,
		LimiarInconsistencia: 80,
	})
	require.NoError(t, err)

	prodRepo := &stubProdutoRepo{
		produtos: map[string]*entity.Produto{
			"emp-1|001": {EmpresaID: "emp-1", CodigoItem: "001", DescricaoItem: "CERVEJA LATA 350ML", NCM: "22030000", Acumulador: "BEBIDAS", Ativo: true},
			"emp-1|002": {EmpresaID: "emp-1", CodigoItem: "002", DescricaoItem: "CERVEJA LATA 473ML", NCM: "22030000", Ativo: true},
		},
	}
	acumRepo := &stubAcumuladorRepo{
		acumuladores: map[string]*entity.Acumulador{
			"BEBIDAS": {Codigo: "BEBIDAS", Descricao: "Bebidas alcoólicas", Cfop: "5102"},
		},
	}
	return usecase.NewClassificacaoUseCase(engine, prodRepo, acumRepo, 50, 2000), prodRepo
}

// TestClassificacaoSugestoes: um produto sem acumulador quase idêntico a um
// classificado recebe o acumulador da referência como sugestão. Nada é gravado.
func TestClassificacaoSugestoes(t *testing.T) {
	uc, repo := newClassificacaoUC(t)

	out, err := uc.Sugestoes("emp-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Analisados)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "002", out.Items[0].CodigoItem)
	assert.Equal(t, "BEBIDAS", out.Items[0].AcumuladorSugerido)
	assert.GreaterOrEqual(t, out.Items[0].Similaridade, 60)

	assert.Empty(t, repo.produtos["emp-1|002"].Acumulador, "sugerir não grava nada")
}

// TestClassificacaoAplicar: só a aprovação explícita grava; itens inválidos
// viram falhas individuais sem abortar o lote.
func TestClassificacaoAplicar(t *testing.T) {
	uc, repo := newClassificacaoUC(t)

	out, err := uc.AplicarSugestoes(dto.AplicarSugestoesRequest{
		EmpresaID: "emp-1",
		Items: []dto.AplicacaoItem{
			{CodigoItem: "002", Acumulador: "BEBIDAS"},
			{CodigoItem: "999", Acumulador: "BEBIDAS"},
			{CodigoItem: "002", Acumulador: "NAO_EXISTE"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Aplicadas)
	require.Len(t, out.Falhas, 2)
	assert.Equal(t, "BEBIDAS", repo.produtos["emp-1|002"].Acumulador)
}

func TestClassificacaoAplicar_SemItens(t *testing.T) {
	uc, _ := newClassificacaoUC(t)

	_, err := uc.AplicarSugestoes(dto.AplicarSugestoesRequest{EmpresaID: "emp-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestClassificacaoInconsistencias: dois produtos quase idênticos com
// acumuladores diferentes aparecem como par divergente.
func TestClassificacaoInconsistencias(t *testing.T) {
	uc, repo := newClassificacaoUC(t)
	repo.produtos["emp-1|002"].Acumulador = "MERCADORIAS"

	out, err := uc.Inconsistencias("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Analisados)
	require.Len(t, out.Items, 1)
	inc := out.Items[0]
	assert.NotEqual(t, inc.ProdutoA.Acumulador, inc.ProdutoB.Acumulador)
	assert.True(t, inc.NcmIgual, "os dois produtos compartilham o NCM")
	assert.GreaterOrEqual(t, inc.Similaridade, 80)
}
