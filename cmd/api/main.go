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
	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/application/production"
	"github.com/tu-usuario/manufactura-pro/internal/application/report"
	"github.com/tu-usuario/manufactura-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/manufactura-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/manufactura-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/manufactura-pro/internal/interfaces/http"
	"github.com/tu-usuario/manufactura-pro/pkg/config"
	"github.com/tu-usuario/manufactura-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción).
	companyRepo := postgres.NewCompanyRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	lotRepo := postgres.NewProductionLotRepository(pool)
	consumptionRepo := postgres.NewLotConsumptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de costeo promedio ponderado y casos de uso de stock.
	wacSvc := costing.NewWACService()
	initializeUC := costing.NewInitializeStockUseCase(txRunner, materialRepo, wacSvc)
	purchaseUC := costing.NewRegisterPurchaseUseCase(txRunner, materialRepo, wacSvc)
	adjustmentUC := costing.NewRegisterAdjustmentUseCase(txRunner, materialRepo, wacSvc)
	stockQueryUC := costing.NewStockQueryUseCase(stockRepo, ledgerRepo, materialRepo)

	// Producción: lotes, BOM y consumos.
	createLotUC := production.NewCreateLotUseCase(lotRepo, productRepo, bomRepo)
	consumeUC := production.NewConsumeMaterialsUseCase(txRunner, wacSvc)
	finishUC := production.NewFinishLotUseCase(txRunner, wacSvc)
	lotQueryUC := production.NewLotQueryUseCase(lotRepo, consumptionRepo)
	upsertBOMUC := production.NewUpsertBOMUseCase(txRunner, productRepo, bomRepo)
	registerConsumptionUC := production.NewRegisterConsumptionUseCase(consumeUC, stockRepo)

	// PDF: hoja de costos del lote.
	pdfGenerator := infrapdf.NewMarotoLotReportGenerator()
	lotReportUC := report.NewLotReportUseCase(
		lotRepo, productRepo, companyRepo, consumptionRepo, materialRepo, pdfGenerator,
	)

	// Catálogo.
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Manufactura Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:    httpRouter.NewCatalogHandler(companyUC, materialUC, productUC),
		Stock:      httpRouter.NewStockHandler(initializeUC, purchaseUC, adjustmentUC, registerConsumptionUC, stockQueryUC),
		Production: httpRouter.NewProductionHandler(createLotUC, consumeUC, finishUC, lotQueryUC, upsertBOMUC, lotReportUC),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
