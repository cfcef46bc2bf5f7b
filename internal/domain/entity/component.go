package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component representa una materia prima del inventario.
// CurrentStock nunca es negativo tras una operación exitosa; las mutaciones
// pasan por restock, ajuste manual o consumo del motor de ensamblaje.
type Component struct {
	ID                   string
	Name                 string
	CurrentStock         decimal.Decimal
	UnitType             string           // etiqueta de unidad (ej. "g", "ml", "unidad"); puede estar vacía
	CostPerUnit          *decimal.Decimal // opcional
	SafetyStockThreshold decimal.Decimal  // umbral de stock bajo (informativo, no bloquea ensamblaje)
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsLowStock indica si el componente está por debajo de su umbral de seguridad.
func (c *Component) IsLowStock() bool {
	return c.CurrentStock.LessThan(c.SafetyStockThreshold)
}

// Operaciones de ajuste manual de stock.
const (
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"
	StockOpSet      = "set"
)
