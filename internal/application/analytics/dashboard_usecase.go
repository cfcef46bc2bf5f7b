// Package analytics contiene los casos de uso de solo lectura del dashboard
// y de la analítica de gasto.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

const (
	dashboardRecentExpenses = 5 // gastos recientes en el widget de actividad
	dashboardTopProducts    = 5 // productos con stock en el widget de actividad

	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 5 * time.Minute
)

// DashboardUseCase arma el resumen del dashboard: burn del mes en curso,
// conteo de componentes bajo umbral y actividad reciente.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). El resultado se
// cachea en Redis con TTL corto cuando hay caché configurada.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         Cache // puede ser nil (caché deshabilitada)
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache Cache) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache}
}

// GetSummary construye el DashboardSummaryDTO del mes en curso.
//
// Cuatro llamadas en paralelo:
//  1. GetExpenseTotal(mes)        → MonthBurn
//  2. CountLowStockComponents     → LowStockCount
//  3. GetRecentExpenses(top 5)    → RecentExpenses
//  4. GetProductsInStock(top 5)   → ProductsInStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if uc.cache != nil {
		var cached dto.DashboardSummaryDTO
		if ok, err := uc.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	now := time.Now()

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)

	// ── Goroutines para paralelizar las 4 consultas DB ────────────────────────
	type burnResult struct {
		total decimal.Decimal
		err   error
	}
	type countResult struct {
		count int
		err   error
	}
	type expensesResult struct {
		items []*entity.Expense
		err   error
	}
	type productsResult struct {
		items []*entity.Product
		err   error
	}

	burnCh := make(chan burnResult, 1)
	lowCh := make(chan countResult, 1)
	expCh := make(chan expensesResult, 1)
	prodCh := make(chan productsResult, 1)

	go func() {
		total, err := uc.analyticsRepo.GetExpenseTotal(ctx, monthStart, monthEnd, "")
		burnCh <- burnResult{total, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountLowStockComponents(ctx)
		lowCh <- countResult{count, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetRecentExpenses(ctx, dashboardRecentExpenses)
		expCh <- expensesResult{items, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetProductsInStock(ctx, dashboardTopProducts)
		prodCh <- productsResult{items, err}
	}()

	burn := <-burnCh
	low := <-lowCh
	exp := <-expCh
	prod := <-prodCh

	if burn.err != nil {
		return nil, fmt.Errorf("dashboard: burn del mes: %w", burn.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: componentes bajo umbral: %w", low.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("dashboard: gastos recientes: %w", exp.err)
	}
	if prod.err != nil {
		return nil, fmt.Errorf("dashboard: productos en stock: %w", prod.err)
	}

	summary := &dto.DashboardSummaryDTO{
		MonthBurn:       burn.total.Round(2),
		LowStockCount:   low.count,
		RecentExpenses:  toExpenseActivity(exp.items),
		ProductsInStock: toProductActivity(prod.items),
		DateLabel:       now.Format("2006-01"),
	}

	if uc.cache != nil {
		// best effort: un fallo de caché no invalida la respuesta
		_ = uc.cache.Set(ctx, dashboardCacheKey, summary, dashboardCacheTTL)
	}
	return summary, nil
}

func toExpenseActivity(items []*entity.Expense) []dto.ExpenseActivityDTO {
	out := make([]dto.ExpenseActivityDTO, 0, len(items))
	for _, e := range items {
		title := "Expense"
		if e.Vendor != nil && e.Vendor.Name != "" {
			title = e.Vendor.Name
		}
		out = append(out, dto.ExpenseActivityDTO{
			ID:          e.ID,
			Title:       title,
			Description: e.Description,
			Amount:      e.Amount,
			Timestamp:   e.CreatedAt,
		})
	}
	return out
}

func toProductActivity(items []*entity.Product) []dto.ProductActivityDTO {
	out := make([]dto.ProductActivityDTO, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ProductActivityDTO{
			ID:           p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
		})
	}
	return out
}
