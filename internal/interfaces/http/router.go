package http

import (
	"github.com/gofiber/fiber/v2"

	appsped "github.com/contabilize/sped-fiscal-api/internal/application/sped"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ImportUC        *appsped.ImportUseCase
	EmpresaUC       *usecase.EmpresaUseCase
	ProdutoUC       *usecase.ProdutoUseCase
	AcumuladorUC    *usecase.AcumuladorUseCase
	CfopUC          *usecase.CfopUseCase
	ClassificacaoUC *usecase.ClassificacaoUseCase
	RelatorioUC     *usecase.RelatorioUseCase
	MaxUploadMB     int
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// SPED (importação e estatísticas)
	sped := api.Group("/sped")
	spedHandler := NewSpedHandler(deps.ImportUC, deps.RelatorioUC, deps.MaxUploadMB)
	sped.Post("/importar", spedHandler.Importar)
	sped.Get("/estatisticas", spedHandler.Estatisticas)

	// Empresas (criadas pela importação; somente leitura)
	empresas := api.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:id", empresaHandler.GetByID)

	// CFOPs
	cfops := api.Group("/cfops")
	cfopHandler := NewCfopHandler(deps.CfopUC)
	cfops.Get("/", cfopHandler.List)
	cfops.Post("/", cfopHandler.Create)
	cfops.Put("/:cfop", cfopHandler.Update)
	cfops.Delete("/:cfop", cfopHandler.Delete)

	// Acumuladores (a rota fixa /buscar vem antes das rotas com :codigo)
	acumuladores := api.Group("/acumuladores")
	acumuladorHandler := NewAcumuladorHandler(deps.AcumuladorUC)
	acumuladores.Get("/buscar", acumuladorHandler.Buscar)
	acumuladores.Get("/", acumuladorHandler.List)
	acumuladores.Post("/", acumuladorHandler.Create)
	acumuladores.Put("/:codigo", acumuladorHandler.Update)
	acumuladores.Delete("/:codigo", acumuladorHandler.Delete)

	// Produtos
	produtos := api.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Get("/", produtoHandler.List)
	produtos.Post("/atualizar-acumulador", produtoHandler.AtualizarAcumulador)
	produtos.Post("/acumulador-em-massa", produtoHandler.AcumuladorEmMassa)
	produtos.Delete("/:codigo", produtoHandler.Desativar)

	// Classificação automática
	classificacao := api.Group("/classificacao")
	classificacaoHandler := NewClassificacaoHandler(deps.ClassificacaoUC)
	classificacao.Post("/sugestoes", classificacaoHandler.Sugestoes)
	classificacao.Post("/aplicar", classificacaoHandler.Aplicar)
	classificacao.Get("/inconsistencias", classificacaoHandler.Inconsistencias)

	// Vendas e relatórios
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	api.Get("/vendas", relatorioHandler.Resumo)
	api.Get("/competencias", relatorioHandler.Competencias)

	relatorios := api.Group("/relatorios")
	relatorios.Get("/vendas", relatorioHandler.RelatorioVendas)
	relatorios.Get("/vendas/pdf", relatorioHandler.RelatorioVendasPDF)
	relatorios.Get("/cfop", relatorioHandler.RelatorioCfop)
	relatorios.Get("/apuracao-cfop", relatorioHandler.ApuracaoCfop)
}
