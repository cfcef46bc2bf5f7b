package entity

import "time"

// Vendor representa un proveedor al que se asocian gastos y cargos recurrentes.
type Vendor struct {
	ID              string
	Name            string
	DefaultCategory string // categoría sugerida al registrar un gasto; puede estar vacía
	WebsiteURL      string
	CreatedAt       time.Time
}
