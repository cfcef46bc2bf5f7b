package dto

import "github.com/shopspring/decimal"

// AssembleRequest entrada para ensamblar unidades de un producto.
type AssembleRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// ConsumedLineDTO consumo aplicado a un componente durante el ensamblaje.
type ConsumedLineDTO struct {
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Consumed      decimal.Decimal `json:"consumed"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// AssembleResponse resultado de un ensamblaje exitoso.
type AssembleResponse struct {
	ProductID       string            `json:"product_id"`
	Quantity        int64             `json:"quantity"`
	NewProductStock int64             `json:"new_product_stock"`
	Consumed        []ConsumedLineDTO `json:"consumed"`
}

// MaxBuildableResponse cantidad máxima construible con el stock actual.
type MaxBuildableResponse struct {
	ProductID    string `json:"product_id"`
	MaxBuildable int64  `json:"max_buildable"`
}
