package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateVendorRequest entrada para crear un proveedor.
type CreateVendorRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	DefaultCategory string `json:"default_category" validate:"omitempty,oneof=OpEx COGS Marketing"`
	WebsiteURL      string `json:"website_url"`
}

// UpdateVendorRequest entrada para actualizar un proveedor.
type UpdateVendorRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	DefaultCategory *string `json:"default_category"`
	WebsiteURL      *string `json:"website_url"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DefaultCategory string `json:"default_category,omitempty"`
	WebsiteURL      string `json:"website_url,omitempty"`
}

// ── Gastos ────────────────────────────────────────────────────────────────────

// CreateExpenseRequest entrada para registrar un gasto.
// Date en formato YYYY-MM-DD.
type CreateExpenseRequest struct {
	Date        string          `json:"date" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"required,oneof=OpEx COGS Marketing"`
	VendorID    string          `json:"vendor_id"`
	IsRecurring bool            `json:"is_recurring"`
	ReceiptURL  string          `json:"receipt_url"`
}

// UpdateExpenseRequest entrada para actualizar un gasto.
type UpdateExpenseRequest struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,oneof=OpEx COGS Marketing"`
	VendorID    *string          `json:"vendor_id"`
	IsRecurring *bool            `json:"is_recurring"`
	ReceiptURL  *string          `json:"receipt_url"`
}

// ExpenseResponse salida de un gasto con proveedor embebido.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	VendorID    string          `json:"vendor_id,omitempty"`
	Vendor      *VendorResponse `json:"vendor,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MonthlyBurnDTO total de gasto de un mes (para el gráfico de burn).
type MonthlyBurnDTO struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}

// ── Cargos recurrentes ────────────────────────────────────────────────────────

// RecurringRuleRequest entrada para crear/actualizar un cargo recurrente.
// NextDueDate en formato YYYY-MM-DD.
type RecurringRuleRequest struct {
	VendorID    string           `json:"vendor_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Frequency   string           `json:"frequency" validate:"omitempty,oneof=monthly yearly"`
	NextDueDate string           `json:"next_due_date"`
	Active      *bool            `json:"active"`
}

// RecurringRuleResponse salida de un cargo recurrente.
type RecurringRuleResponse struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id,omitempty"`
	Vendor      *VendorResponse  `json:"vendor,omitempty"`
	Amount      *decimal.Decimal `json:"amount"`
	Frequency   string           `json:"frequency,omitempty"`
	NextDueDate string           `json:"next_due_date,omitempty"`
	Active      bool             `json:"active"`
}
