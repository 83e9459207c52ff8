package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appsped "github.com/contabilize/sped-fiscal-api/internal/application/sped"
	"github.com/contabilize/sped-fiscal-api/internal/application/usecase"
	"github.com/contabilize/sped-fiscal-api/internal/domain/classificacao"
	domsped "github.com/contabilize/sped-fiscal-api/internal/domain/sped"
	infrapdf "github.com/contabilize/sped-fiscal-api/internal/infrastructure/pdf"
	"github.com/contabilize/sped-fiscal-api/internal/infrastructure/postgres"
	"github.com/contabilize/sped-fiscal-api/internal/infrastructure/search"
	httpRouter "github.com/contabilize/sped-fiscal-api/internal/interfaces/http"
	"github.com/contabilize/sped-fiscal-api/pkg/config"
	"github.com/contabilize/sped-fiscal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	acumuladorRepo := postgres.NewAcumuladorRepository(pool)
	cfopRepo := postgres.NewCfopRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine, err := classificacao.NewEngine(classificacao.Options{
		LimiarSugestao:       cfg.Classificacao.LimiarSugestao,
		LimiarInconsistencia: cfg.Classificacao.LimiarInconsistencia,
		MaxReferencias:       cfg.Classificacao.MaxReferencias,
		MaxInconsistencias:   cfg.Classificacao.MaxInconsistencias,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("motor de classificação")
	}

	importUC := appsped.NewImportUseCase(domsped.NewParser(), txRunner, log)
	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo, acumuladorRepo)
	acumuladorUC := usecase.NewAcumuladorUseCase(acumuladorRepo, cfopRepo, produtoRepo, search.NewAcumuladorMatcher())
	cfopUC := usecase.NewCfopUseCase(cfopRepo, acumuladorRepo)
	classificacaoUC := usecase.NewClassificacaoUseCase(
		engine, produtoRepo, acumuladorRepo,
		cfg.Classificacao.MaxSugestoes, cfg.Classificacao.MaxReferencias,
	)
	relatorioUC := usecase.NewRelatorioUseCase(relatorioRepo, empresaRepo, infrapdf.NewRelatorioPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Margem sobre o limite do upload SPED para o envelope multipart.
		BodyLimit:    (cfg.Sped.MaxUploadMB + 1) << 20,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SPED Fiscal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:        importUC,
		EmpresaUC:       empresaUC,
		ProdutoUC:       produtoUC,
		AcumuladorUC:    acumuladorUC,
		CfopUC:          cfopUC,
		ClassificacaoUC: classificacaoUC,
		RelatorioUC:     relatorioUC,
		MaxUploadMB:     cfg.Sped.MaxUploadMB,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
