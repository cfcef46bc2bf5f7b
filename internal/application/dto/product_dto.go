package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto terminado.
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	SKU          string           `json:"sku"`
	CurrentStock int64            `json:"current_stock" validate:"min=0"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	SOPMarkdown  string           `json:"sop_markdown"`
}

// UpdateProductRequest entrada para actualizar un producto.
// CurrentStock no se toca aquí: cambia por ajuste manual o ensamblaje.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	SOPMarkdown *string          `json:"sop_markdown"`
}

// BOMLineRequest upsert de una línea del BOM.
type BOMLineRequest struct {
	ComponentID      string           `json:"component_id" validate:"required"`
	QuantityRequired *decimal.Decimal `json:"quantity_required"`
}

// BOMLineResponse línea del BOM con snapshot del componente.
type BOMLineResponse struct {
	ID               string           `json:"id"`
	ComponentID      string           `json:"component_id,omitempty"`
	ComponentName    string           `json:"component_name,omitempty"`
	QuantityRequired *decimal.Decimal `json:"quantity_required"`
	ComponentStock   *decimal.Decimal `json:"component_stock,omitempty"`
	Usable           bool             `json:"usable"`
}

// ProductResponse salida de un producto con BOM y cantidad máxima construible.
type ProductResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	SKU          string            `json:"sku,omitempty"`
	CurrentStock int64             `json:"current_stock"`
	SalePrice    *decimal.Decimal  `json:"sale_price,omitempty"`
	SOPMarkdown  string            `json:"sop_markdown,omitempty"`
	BOM          []BOMLineResponse `json:"bom"`
	MaxBuildable int64             `json:"max_buildable"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
