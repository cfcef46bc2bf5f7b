package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyMetric registra las métricas de suscripción de un mes calendario.
// Month se normaliza al día 1 del mes.
type MonthlyMetric struct {
	ID                 string
	Month              time.Time
	NewSubscribers     int64
	ChurnedSubscribers int64
	ActiveSubscribers  int64
	MarketingSpend     decimal.Decimal
	TotalRevenue       decimal.Decimal
	CreatedAt          time.Time
}
