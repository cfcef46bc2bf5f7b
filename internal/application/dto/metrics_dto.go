package dto

import "github.com/shopspring/decimal"

// MetricRequest entrada para crear/actualizar una métrica mensual de
// suscripciones. Month en formato YYYY-MM (se normaliza al día 1).
type MetricRequest struct {
	Month              string          `json:"month" validate:"required"`
	NewSubscribers     int64           `json:"new_subscribers" validate:"min=0"`
	ChurnedSubscribers int64           `json:"churned_subscribers" validate:"min=0"`
	ActiveSubscribers  int64           `json:"active_subscribers" validate:"min=0"`
	MarketingSpend     decimal.Decimal `json:"marketing_spend"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
}

// MetricResponse salida de una métrica mensual.
type MetricResponse struct {
	ID                 string          `json:"id"`
	Month              string          `json:"month"` // YYYY-MM
	NewSubscribers     int64           `json:"new_subscribers"`
	ChurnedSubscribers int64           `json:"churned_subscribers"`
	ActiveSubscribers  int64           `json:"active_subscribers"`
	MarketingSpend     decimal.Decimal `json:"marketing_spend"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
}

// GrowthPointDTO punto de la serie "growth pulse": ARPU, LTV, CAC y su razón,
// derivados de la métrica del mes.
type GrowthPointDTO struct {
	Month             string          `json:"month"` // YYYY-MM
	ActiveSubscribers int64           `json:"active_subscribers"`
	ARPU              decimal.Decimal `json:"arpu"`
	LTV               decimal.Decimal `json:"ltv"`
	CAC               decimal.Decimal `json:"cac"`
	Ratio             decimal.Decimal `json:"ratio"`
}

// MarketingSpendResponse gasto de marketing del libro mayor para un mes,
// usado para prellenar el formulario de métricas.
type MarketingSpendResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
