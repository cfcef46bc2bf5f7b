// Package finance contiene los casos de uso del reporte financiero imprimible.
package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
)

// CategoryLine total de una categoría dentro del reporte.
type CategoryLine struct {
	Category string
	Total    decimal.Decimal
}

// ExpenseReport datos ya resueltos para renderizar el libro de gastos de un mes.
type ExpenseReport struct {
	Month      time.Time // día 1 del mes reportado
	Expenses   []*entity.Expense
	Categories []CategoryLine
	Total      decimal.Decimal
}

// ExpensePDFGenerator define el puerto de salida para renderizar el reporte.
// Cualquier adaptador (Maroto, mock) debe implementar esta interfaz; la capa
// de aplicación solo conoce este contrato (DIP).
type ExpensePDFGenerator interface {
	GenerateExpenseReport(ctx context.Context, report *ExpenseReport) ([]byte, error)
}
