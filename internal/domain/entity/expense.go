package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de gasto.
const (
	ExpenseCategoryOpEx      = "OpEx"
	ExpenseCategoryCOGS      = "COGS"
	ExpenseCategoryMarketing = "Marketing"
)

// ValidExpenseCategory valida la categoría contra el conjunto cerrado.
func ValidExpenseCategory(c string) bool {
	return c == ExpenseCategoryOpEx || c == ExpenseCategoryCOGS || c == ExpenseCategoryMarketing
}

// Expense representa un gasto del libro mayor.
type Expense struct {
	ID          string
	Date        time.Time // fecha contable del gasto (solo día)
	Description string
	Amount      decimal.Decimal
	Category    string // OpEx | COGS | Marketing
	VendorID    string // opcional
	IsRecurring bool
	ReceiptURL  string
	CreatedAt   time.Time
	Vendor      *Vendor // snapshot embebido en listados
}
