package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/misulabs/misu-erp/internal/application/analytics"
	appassembly "github.com/misulabs/misu-erp/internal/application/assembly"
	appfinance "github.com/misulabs/misu-erp/internal/application/finance"
	"github.com/misulabs/misu-erp/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ComponentUC *usecase.ComponentUseCase
	ProductUC   *usecase.ProductUseCase
	AssemblyUC  *appassembly.UseCase
	VendorUC    *usecase.VendorUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	ReportUC    *appfinance.ReportUseCase
	RecurringUC *usecase.RecurringUseCase
	MetricsUC   *usecase.MetricsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	SpendUC     *appanalytics.SpendUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Componentes (materias primas)
	components := api.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC)
	components.Post("/", componentHandler.Create)
	components.Get("/", componentHandler.List)
	components.Get("/low-stock", componentHandler.ListLowStock)
	components.Get("/:id", componentHandler.GetByID)
	components.Put("/:id", componentHandler.Update)
	components.Post("/:id/adjust-stock", componentHandler.AdjustStock)
	components.Post("/:id/restock", componentHandler.Restock)
	components.Delete("/:id", componentHandler.Delete)

	// Productos terminados + BOM + ensamblaje
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	assemblyHandler := NewAssemblyHandler(deps.AssemblyUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/bom", productHandler.GetBOM)
	products.Put("/:id/bom", productHandler.UpsertBOMLine)
	products.Delete("/:id/bom/:lineId", productHandler.DeleteBOMLine)
	products.Post("/:id/assemble", assemblyHandler.Assemble)
	products.Get("/:id/max-buildable", assemblyHandler.MaxBuildable)

	// Proveedores
	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Gastos + reporte PDF
	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.ReportUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/report", expenseHandler.DownloadReport)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Cargos recurrentes
	recurring := api.Group("/recurring")
	recurringHandler := NewRecurringHandler(deps.RecurringUC)
	recurring.Post("/", recurringHandler.Create)
	recurring.Get("/", recurringHandler.List)
	recurring.Get("/:id", recurringHandler.GetByID)
	recurring.Put("/:id", recurringHandler.Update)
	recurring.Delete("/:id", recurringHandler.Delete)

	// Métricas de suscripción + growth pulse
	metrics := api.Group("/metrics")
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	metrics.Post("/", metricsHandler.Create)
	metrics.Get("/", metricsHandler.List)
	metrics.Get("/growth-pulse", metricsHandler.GrowthPulse)
	metrics.Get("/marketing-spend", metricsHandler.MarketingSpend)
	metrics.Get("/:id", metricsHandler.GetByID)
	metrics.Put("/:id", metricsHandler.Update)
	metrics.Delete("/:id", metricsHandler.Delete)

	// Dashboard + analítica de gasto
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	analyticsHandler := NewAnalyticsHandler(deps.SpendUC)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Get("/spend", analyticsHandler.GetSpendSummary)
	analyticsGroup.Get("/burn", analyticsHandler.GetMonthlyBurn)
}
