package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
)

// CategoryTotalResult total de gasto por categoría en un rango de fechas.
type CategoryTotalResult struct {
	Category string
	Total    decimal.Decimal
}

// VendorTotalResult total de gasto por proveedor en un rango de fechas.
// VendorName es "Unassigned" para gastos sin proveedor.
type VendorTotalResult struct {
	VendorName string
	Total      decimal.Decimal
}

// MonthlyTotalResult total de gasto de un mes calendario.
type MonthlyTotalResult struct {
	Month time.Time
	Total decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard y la
// analítica de gasto. Todas reciben context: son lecturas potencialmente
// costosas que el caller puede cancelar.
type AnalyticsRepository interface {
	// GetExpenseTotal suma los gastos del rango; category vacío = todas.
	GetExpenseTotal(ctx context.Context, start, end time.Time, category string) (decimal.Decimal, error)
	GetCategoryTotals(ctx context.Context, start, end time.Time) ([]CategoryTotalResult, error)
	GetVendorTotals(ctx context.Context, start, end time.Time) ([]VendorTotalResult, error)
	// GetMonthlyTotals agrupa el gasto por mes calendario (últimos n meses con datos).
	GetMonthlyTotals(ctx context.Context, months int) ([]MonthlyTotalResult, error)
	CountLowStockComponents(ctx context.Context) (int, error)
	GetRecentExpenses(ctx context.Context, limit int) ([]*entity.Expense, error)
	GetProductsInStock(ctx context.Context, limit int) ([]*entity.Product, error)
}
