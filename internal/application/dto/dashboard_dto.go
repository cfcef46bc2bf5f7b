package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseActivityDTO gasto reciente para el widget de actividad.
type ExpenseActivityDTO struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"` // nombre del proveedor o "Expense"
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ProductActivityDTO producto con stock para el widget de actividad.
type ProductActivityDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int64  `json:"current_stock"`
}

// DashboardSummaryDTO resumen del dashboard: burn del mes en curso, conteo de
// componentes bajo umbral y actividad reciente.
type DashboardSummaryDTO struct {
	MonthBurn       decimal.Decimal      `json:"month_burn"`
	LowStockCount   int                  `json:"low_stock_count"`
	RecentExpenses  []ExpenseActivityDTO `json:"recent_expenses"`
	ProductsInStock []ProductActivityDTO `json:"products_in_stock"`
	DateLabel       string               `json:"date_label"` // YYYY-MM del mes calculado
}
