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

	_ "github.com/jhoicas/brewery-api/docs"
	"github.com/jhoicas/brewery-api/internal/application/batch"
	"github.com/jhoicas/brewery-api/internal/application/billing"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/application/packaging"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/brewery-api/internal/infrastructure/pdf"
	"github.com/jhoicas/brewery-api/internal/infrastructure/postgres"
	"github.com/jhoicas/brewery-api/internal/infrastructure/xmlconfig"
	httpRouter "github.com/jhoicas/brewery-api/internal/interfaces/http"
	"github.com/jhoicas/brewery-api/pkg/config"
	"github.com/jhoicas/brewery-api/pkg/jwt"
	"github.com/jhoicas/brewery-api/pkg/logger"
)

// @title        Brewery API
// @version      1.0
// @description  Batches, packaging, kegs, inventory and invoices for a brewery or distillery.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		memory.SeedDemo(store, time.Now())
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("using the in-memory store; data is lost on exit")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("apply schema")
			}
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	volumes, err := xmlconfig.LoadVolumeTable(cfg.Packaging.TypesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Packaging.TypesPath).Msg("load package types")
	}

	zl := log.Zerolog()
	batchUC := batch.NewUseCase(txRunner, repos, zl.With().Str("component", "batch").Logger())
	packagingUC := packaging.NewUseCase(txRunner, repos, volumes, zl.With().Str("component", "packaging").Logger())
	inventoryUC := inventory.NewLedgerUseCase(txRunner, repos, zl.With().Str("component", "inventory").Logger())
	kegUC := keg.NewUseCase(txRunner, repos, zl.With().Str("component", "keg").Logger())
	invoiceUC := billing.NewInvoiceUseCase(txRunner, repos, cfg.Billing.KegDepositPrice, zl.With().Str("component", "billing").Logger())
	invoicePDFUC := billing.NewPDFUseCase(repos.Invoices, repos.Customers, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Brewery API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Batches:    batchUC,
		Packaging:  packagingUC,
		Inventory:  inventoryUC,
		Kegs:       kegUC,
		Invoices:   invoiceUC,
		InvoicePDF: invoicePDFUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        zl,
	})

	if cfg.App.Env == "development" {
		if tok, err := jwt.Generate(cfg.JWT.Secret, "dev-user", "brewer", cfg.JWT.Issuer, cfg.JWT.Expiration); err == nil {
			log.Info().Str("token", tok).Msg("development bearer token")
		} else {
			log.Warn().Err(err).Msg("development bearer token")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
