package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComponentRequest entrada para crear una materia prima.
type CreateComponentRequest struct {
	Name                 string           `json:"name" validate:"required,min=1,max=200"`
	CurrentStock         decimal.Decimal  `json:"current_stock"`
	UnitType             string           `json:"unit_type"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit"`
	SafetyStockThreshold decimal.Decimal  `json:"safety_stock_threshold"`
}

// UpdateComponentRequest entrada para actualizar una materia prima.
// No permite modificar CurrentStock: el stock se mueve con restock/ajuste/ensamblaje.
type UpdateComponentRequest struct {
	Name                 *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitType             *string          `json:"unit_type"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit"`
	SafetyStockThreshold *decimal.Decimal `json:"safety_stock_threshold"`
}

// AdjustStockRequest ajuste manual de stock con operación enumerada.
type AdjustStockRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Operation string          `json:"operation" validate:"required,oneof=add subtract set"`
}

// RestockRequest reposición de stock (equivale a operation=add).
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ComponentResponse salida de una materia prima.
type ComponentResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	CurrentStock         decimal.Decimal  `json:"current_stock"`
	UnitType             string           `json:"unit_type,omitempty"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit,omitempty"`
	SafetyStockThreshold decimal.Decimal  `json:"safety_stock_threshold"`
	LowStock             bool             `json:"low_stock"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// LowStockComponentDTO fila de la lista de componentes bajo umbral,
// con el déficit frente al umbral de seguridad.
type LowStockComponentDTO struct {
	ComponentResponse
	Deficit decimal.Decimal `json:"deficit"`
}
