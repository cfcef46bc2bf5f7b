package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias válidas de un cargo recurrente.
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringRule representa un cargo recurrente (suscripción a proveedor).
type RecurringRule struct {
	ID          string
	VendorID    string
	Amount      *decimal.Decimal
	Frequency   string // monthly | yearly
	NextDueDate *time.Time
	Active      bool
	Vendor      *Vendor // snapshot embebido en listados
}
