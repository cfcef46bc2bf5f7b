package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado.
// CurrentStock es un entero no negativo; solo cambia por ajuste manual o por
// producción del motor de ensamblaje. SOPMarkdown guarda el procedimiento
// estándar de armado que la UI muestra junto al formulario de ensamble.
type Product struct {
	ID           string
	Name         string
	SKU          string // opcional
	CurrentStock int64
	SalePrice    *decimal.Decimal // opcional
	SOPMarkdown  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
