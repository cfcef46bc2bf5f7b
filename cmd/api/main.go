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

	appanalytics "github.com/misulabs/misu-erp/internal/application/analytics"
	appassembly "github.com/misulabs/misu-erp/internal/application/assembly"
	appfinance "github.com/misulabs/misu-erp/internal/application/finance"
	"github.com/misulabs/misu-erp/internal/application/usecase"
	domassembly "github.com/misulabs/misu-erp/internal/domain/assembly"
	"github.com/misulabs/misu-erp/internal/infrastructure/cache"
	infrapdf "github.com/misulabs/misu-erp/internal/infrastructure/pdf"
	"github.com/misulabs/misu-erp/internal/infrastructure/postgres"
	httpRouter "github.com/misulabs/misu-erp/internal/interfaces/http"
	"github.com/misulabs/misu-erp/pkg/config"
	"github.com/misulabs/misu-erp/pkg/logger"
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

	componentRepo := postgres.NewComponentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	recurringRepo := postgres.NewRecurringRuleRepository(pool)
	metricRepo := postgres.NewMetricRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché opcional del dashboard: se habilita solo con REDIS_ADDR definido.
	var dashboardCache appanalytics.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; dashboard sin caché")
		} else {
			defer redisCache.Close()
			dashboardCache = redisCache
		}
	}

	componentUC := usecase.NewComponentUseCase(componentRepo)
	productUC := usecase.NewProductUseCase(productRepo, bomRepo, componentRepo)
	assemblyUC := appassembly.NewUseCase(txRunner, productRepo, bomRepo, domassembly.Options{
		StrictLines: cfg.Assembly.StrictBOM,
	})
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, vendorRepo)
	recurringUC := usecase.NewRecurringUseCase(recurringRepo, vendorRepo)
	metricsUC := usecase.NewMetricsUseCase(metricRepo, analyticsRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, dashboardCache)
	spendUC := appanalytics.NewSpendUseCase(analyticsRepo)

	// PDF: libro de gastos mensual
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := appfinance.NewReportUseCase(expenseRepo, pdfGenerator)

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
		Title:    "Misu ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ComponentUC: componentUC,
		ProductUC:   productUC,
		AssemblyUC:  assemblyUC,
		VendorUC:    vendorUC,
		ExpenseUC:   expenseUC,
		ReportUC:    reportUC,
		RecurringUC: recurringUC,
		MetricsUC:   metricsUC,
		DashboardUC: dashboardUC,
		SpendUC:     spendUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado con errores")
	}
}
