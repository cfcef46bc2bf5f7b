package dto

import "github.com/shopspring/decimal"

// CategoryTotalDTO total y participación de una categoría de gasto.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"` // fracción 0..1 del gasto total
}

// VendorTotalDTO total de gasto por proveedor (descendente).
type VendorTotalDTO struct {
	Vendor string          `json:"vendor"`
	Total  decimal.Decimal `json:"total"`
}

// SpendSummaryDTO composición del gasto en un rango de fechas.
type SpendSummaryDTO struct {
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	TotalSpend decimal.Decimal    `json:"total_spend"`
	Categories []CategoryTotalDTO `json:"categories"`
	Vendors    []VendorTotalDTO   `json:"vendors"`
}
