package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// Formato de fecha de los parámetros de rango.
const dayLayout = "2006-01-02"

// Orden fijo de presentación de las categorías de gasto.
var categoryOrder = [...]string{
	entity.ExpenseCategoryOpEx,
	entity.ExpenseCategoryCOGS,
	entity.ExpenseCategoryMarketing,
}

// SpendUseCase analítica de composición del gasto: totales por categoría con
// su participación, totales por proveedor y serie mensual de burn.
type SpendUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewSpendUseCase construye el caso de uso.
func NewSpendUseCase(analyticsRepo repository.AnalyticsRepository) *SpendUseCase {
	return &SpendUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary arma la composición del gasto entre start y end (YYYY-MM-DD,
// rango inclusivo en días). Las tres categorías aparecen siempre, con total
// cero si no hubo gastos; los proveedores vienen en orden descendente por
// total y los gastos sin proveedor se agrupan como "Unassigned".
func (uc *SpendUseCase) GetSummary(ctx context.Context, startStr, endStr string) (*dto.SpendSummaryDTO, error) {
	start, err := time.Parse(dayLayout, startStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dayLayout, endStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	// el repositorio consulta [start, end) sobre fechas de día
	endExclusive := end.AddDate(0, 0, 1)

	categories, err := uc.analyticsRepo.GetCategoryTotals(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}
	vendors, err := uc.analyticsRepo.GetVendorTotals(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal, len(categories))
	total := decimal.Zero
	for _, c := range categories {
		byCategory[c.Category] = c.Total
		total = total.Add(c.Total)
	}

	catDTOs := make([]dto.CategoryTotalDTO, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		catTotal := byCategory[name]
		percent := decimal.Zero
		if total.IsPositive() {
			percent = catTotal.Div(total).Round(4)
		}
		catDTOs = append(catDTOs, dto.CategoryTotalDTO{
			Category: name,
			Total:    catTotal,
			Percent:  percent,
		})
	}

	vendorDTOs := make([]dto.VendorTotalDTO, 0, len(vendors))
	for _, v := range vendors {
		vendorDTOs = append(vendorDTOs, dto.VendorTotalDTO{
			Vendor: v.VendorName,
			Total:  v.Total,
		})
	}

	return &dto.SpendSummaryDTO{
		StartDate:  startStr,
		EndDate:    endStr,
		TotalSpend: total,
		Categories: catDTOs,
		Vendors:    vendorDTOs,
	}, nil
}

// GetMonthlyBurn devuelve el gasto total por mes calendario de los últimos
// n meses con datos, en orden cronológico.
func (uc *SpendUseCase) GetMonthlyBurn(ctx context.Context, months int) ([]dto.MonthlyBurnDTO, error) {
	if months <= 0 {
		months = 6
	}
	rows, err := uc.analyticsRepo.GetMonthlyTotals(ctx, months)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlyBurnDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyBurnDTO{
			Month: r.Month.Format("2006-01"),
			Total: r.Total,
		})
	}
	return out, nil
}
