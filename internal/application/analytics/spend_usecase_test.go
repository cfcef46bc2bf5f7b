package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misulabs/misu-erp/internal/application/analytics"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary — composición del gasto por categoría y proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestSpendSummary_CategoriasCompletasYOrdenadas(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		categoryTotals: []repository.CategoryTotalResult{
			{Category: entity.ExpenseCategoryMarketing, Total: dec(250)},
			{Category: entity.ExpenseCategoryOpEx, Total: dec(750)},
			// COGS sin gastos: no viene del repositorio
		},
		vendorTotals: []repository.VendorTotalResult{
			{VendorName: "AWS", Total: dec(600)},
			{VendorName: "Unassigned", Total: dec(400)},
		},
	}
	uc := analytics.NewSpendUseCase(repo)

	sum, err := uc.GetSummary(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.True(t, sum.TotalSpend.Equal(dec(1000)))

	// las tres categorías siempre presentes, en orden fijo OpEx, COGS, Marketing
	require.Len(t, sum.Categories, 3)
	assert.Equal(t, entity.ExpenseCategoryOpEx, sum.Categories[0].Category)
	assert.Equal(t, entity.ExpenseCategoryCOGS, sum.Categories[1].Category)
	assert.Equal(t, entity.ExpenseCategoryMarketing, sum.Categories[2].Category)

	assert.True(t, sum.Categories[0].Percent.Equal(dec(0.75)), "participación como fracción")
	assert.True(t, sum.Categories[1].Total.Equal(decimal.Zero), "la categoría sin gastos vale cero")
	assert.True(t, sum.Categories[1].Percent.Equal(decimal.Zero))
	assert.True(t, sum.Categories[2].Percent.Equal(dec(0.25)))

	require.Len(t, sum.Vendors, 2)
	assert.Equal(t, "AWS", sum.Vendors[0].Vendor)
	assert.Equal(t, "Unassigned", sum.Vendors[1].Vendor)
}

// El rango de la API es inclusivo en días; el repositorio consulta [start, end).
func TestSpendSummary_RangoInclusivoEnDias(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewSpendUseCase(repo)

	_, err := uc.GetSummary(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), repo.gotStart)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), repo.gotEnd,
		"el 31 de agosto entra completo en el rango")
}

func TestSpendSummary_SinGastos_PorcentajesCero(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewSpendUseCase(repo)

	sum, err := uc.GetSummary(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.True(t, sum.TotalSpend.Equal(decimal.Zero))
	require.Len(t, sum.Categories, 3)
	for _, c := range sum.Categories {
		assert.True(t, c.Total.Equal(decimal.Zero))
		assert.True(t, c.Percent.Equal(decimal.Zero), "con total cero no hay división")
	}
}

func TestSpendSummary_ParametrosInvalidos(t *testing.T) {
	uc := analytics.NewSpendUseCase(&fakeAnalyticsRepo{})

	_, err := uc.GetSummary(context.Background(), "01-08-2026", "2026-08-31")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "start con formato inválido")

	_, err = uc.GetSummary(context.Background(), "2026-08-01", "31/08")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "end con formato inválido")

	_, err = uc.GetSummary(context.Background(), "2026-08-31", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "end anterior a start")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetMonthlyBurn
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyBurn_FormateaLaSerie(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		monthlyTotals: []repository.MonthlyTotalResult{
			{Month: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), Total: dec(800)},
			{Month: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), Total: dec(950)},
		},
	}
	uc := analytics.NewSpendUseCase(repo)

	out, err := uc.GetMonthlyBurn(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2026-07", out[0].Month)
	assert.Equal(t, "2026-08", out[1].Month)
	assert.True(t, out[1].Total.Equal(dec(950)))
	assert.Equal(t, 2, repo.gotMonths)
}

func TestMonthlyBurn_MesesPorDefecto(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewSpendUseCase(repo)

	_, err := uc.GetMonthlyBurn(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, repo.gotMonths, "sin parámetro se piden 6 meses")
}
