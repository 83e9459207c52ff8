package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
)

func newAcumuladorUC() (*usecase.AcumuladorUseCase, *stubAcumuladorRepo, *stubProdutoRepo) {
	acumRepo := &stubAcumuladorRepo{
		acumuladores: map[string]*entity.Acumulador{
			"VENDAS": {Codigo: "VENDAS", Descricao: "Vendas de mercadorias", Cfop: "5102"},
		},
	}
	prodRepo := &stubProdutoRepo{produtos: map[string]*entity.Produto{}}
	cfopRepo := &stubCfopRepo{
		cfops: map[string]*entity.Cfop{
			"5102": {Cfop: "5102", Descricao: "Venda de mercadoria adquirida de terceiros"},
		},
	}
	uc := usecase.NewAcumuladorUseCase(acumRepo, cfopRepo, prodRepo, stubMatcher{})
	return uc, acumRepo, prodRepo
}

func TestAcumuladorCreate(t *testing.T) {
	uc, repo, _ := newAcumuladorUC()

	out, err := uc.Create(dto.CreateAcumuladorRequest{
		Codigo: "vendas_st", Descricao: "Vendas com substituição tributária", Cfop: "5102",
	})
	require.NoError(t, err)
	assert.Equal(t, "VENDAS_ST", out.Codigo, "código é normalizado para maiúsculas")
	assert.NotNil(t, repo.acumuladores["VENDAS_ST"])
}

func TestAcumuladorCreate_CfopNaoCadastrado(t *testing.T) {
	uc, _, _ := newAcumuladorUC()

	_, err := uc.Create(dto.CreateAcumuladorRequest{
		Codigo: "SERVICOS", Descricao: "Serviços prestados", Cfop: "5933",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAcumuladorCreate_CodigoInvalido(t *testing.T) {
	uc, _, _ := newAcumuladorUC()

	casos := []string{"ab", "com espaço", strings.Repeat("X", 21)}
	for _, codigo := range casos {
		_, err := uc.Create(dto.CreateAcumuladorRequest{
			Codigo: codigo, Descricao: "Descrição válida", Cfop: "5102",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "código %q deve ser rejeitado", codigo)
	}
}

// TestAcumuladorDelete_EmUso: a exclusão é recusada enquanto houver produtos
// classificados no acumulador.
func TestAcumuladorDelete_EmUso(t *testing.T) {
	uc, repo, prodRepo := newAcumuladorUC()
	prodRepo.produtos["emp-1|001"] = &entity.Produto{
		EmpresaID: "emp-1", CodigoItem: "001", Acumulador: "VENDAS", Ativo: true,
	}

	err := uc.Delete("VENDAS")
	require.ErrorIs(t, err, domain.ErrAcumuladorEmUso)
	assert.NotNil(t, repo.acumuladores["VENDAS"], "acumulador em uso não é removido")

	delete(prodRepo.produtos, "emp-1|001")
	require.NoError(t, uc.Delete("VENDAS"))
	assert.Nil(t, repo.acumuladores["VENDAS"])
}

func TestAcumuladorUpdate_NaoEncontrado(t *testing.T) {
	uc, _, _ := newAcumuladorUC()

	descricao := "Nova descrição"
	_, err := uc.Update("NAO_EXISTE", dto.UpdateAcumuladorRequest{Descricao: &descricao})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAcumuladorBuscar(t *testing.T) {
	uc, _, _ := newAcumuladorUC()

	out, err := uc.Buscar("venda consumidor", 5)
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "o matcher stub devolve o catálogo inteiro")
	assert.Equal(t, "VENDAS", out.Items[0].Codigo)

	_, err = uc.Buscar("   ", 5)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "termo vazio é rejeitado")
}

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubCfopRepo struct {
	cfops map[string]*entity.Cfop
}

func (r *stubCfopRepo) Create(c *entity.Cfop) error {
	if _, ok := r.cfops[c.Cfop]; ok {
		return domain.ErrDuplicate
	}
	r.cfops[c.Cfop] = c
	return nil
}

func (r *stubCfopRepo) GetByCodigo(cfop string) (*entity.Cfop, error) {
	return r.cfops[cfop], nil
}

func (r *stubCfopRepo) List(string) ([]*entity.Cfop, error) {
	out := make([]*entity.Cfop, 0, len(r.cfops))
	for _, c := range r.cfops {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCfopRepo) Update(c *entity.Cfop) error {
	r.cfops[c.Cfop] = c
	return nil
}

func (r *stubCfopRepo) Delete(cfop string) error {
	delete(r.cfops, cfop)
	return nil
}

// stubMatcher ignora o ranking e devolve os primeiros candidatos.
type stubMatcher struct{}

func (stubMatcher) Buscar(_ string, acumuladores []*entity.Acumulador, limite int) []*entity.Acumulador {
	if len(acumuladores) > limite {
		return acumuladores[:limite]
	}
	return acumuladores
}
