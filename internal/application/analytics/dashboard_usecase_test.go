package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misulabs/misu-erp/internal/application/analytics"
	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: repositorio de analítica configurable y caché en memoria.
// ──────────────────────────────────────────────────────────────────────────────

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

type fakeAnalyticsRepo struct {
	expenseTotal   decimal.Decimal
	expenseErr     error
	lowStockCount  int
	lowStockErr    error
	recentExpenses []*entity.Expense
	recentErr      error
	products       []*entity.Product
	productsErr    error

	categoryTotals []repository.CategoryTotalResult
	vendorTotals   []repository.VendorTotalResult
	monthlyTotals  []repository.MonthlyTotalResult

	gotStart, gotEnd time.Time
	gotCategory      string
	gotMonths        int
}

func (r *fakeAnalyticsRepo) GetExpenseTotal(_ context.Context, start, end time.Time, category string) (decimal.Decimal, error) {
	r.gotStart, r.gotEnd, r.gotCategory = start, end, category
	return r.expenseTotal, r.expenseErr
}

func (r *fakeAnalyticsRepo) GetCategoryTotals(_ context.Context, start, end time.Time) ([]repository.CategoryTotalResult, error) {
	r.gotStart, r.gotEnd = start, end
	return r.categoryTotals, nil
}

func (r *fakeAnalyticsRepo) GetVendorTotals(_ context.Context, _, _ time.Time) ([]repository.VendorTotalResult, error) {
	return r.vendorTotals, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyTotals(_ context.Context, months int) ([]repository.MonthlyTotalResult, error) {
	r.gotMonths = months
	return r.monthlyTotals, nil
}

func (r *fakeAnalyticsRepo) CountLowStockComponents(context.Context) (int, error) {
	return r.lowStockCount, r.lowStockErr
}

func (r *fakeAnalyticsRepo) GetRecentExpenses(context.Context, int) ([]*entity.Expense, error) {
	return r.recentExpenses, r.recentErr
}

func (r *fakeAnalyticsRepo) GetProductsInStock(context.Context, int) ([]*entity.Product, error) {
	return r.products, r.productsErr
}

// fakeCache serializa JSON igual que la implementación de Redis.
type fakeCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardGetSummary_AgregaLasCuatroConsultas(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		expenseTotal:  dec(1234.567),
		lowStockCount: 3,
		recentExpenses: []*entity.Expense{
			{ID: "e1", Description: "Hosting", Amount: dec(50), Vendor: &entity.Vendor{Name: "AWS"}},
			{ID: "e2", Description: "Cinta", Amount: dec(10)}, // sin proveedor
		},
		products: []*entity.Product{
			{ID: "p1", Name: "Vela Lavanda", CurrentStock: 12},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, nil)

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, sum.MonthBurn.Equal(dec(1234.57)), "el burn se redondea a 2 decimales")
	assert.Equal(t, 3, sum.LowStockCount)
	assert.Equal(t, time.Now().Format("2006-01"), sum.DateLabel)

	require.Len(t, sum.RecentExpenses, 2)
	assert.Equal(t, "AWS", sum.RecentExpenses[0].Title, "el título es el nombre del proveedor")
	assert.Equal(t, "Expense", sum.RecentExpenses[1].Title, "sin proveedor cae al genérico")

	require.Len(t, sum.ProductsInStock, 1)
	assert.Equal(t, int64(12), sum.ProductsInStock[0].CurrentStock)

	// el rango consultado es el mes en curso
	now := time.Now()
	assert.Equal(t, 1, repo.gotStart.Day())
	assert.Equal(t, now.Month(), repo.gotStart.Month())
	assert.Empty(t, repo.gotCategory, "el burn suma todas las categorías")
}

func TestDashboardGetSummary_PropagaFallos(t *testing.T) {
	repo := &fakeAnalyticsRepo{lowStockErr: errors.New("db: timeout")}
	uc := analytics.NewDashboardUseCase(repo, nil)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "umbral")
}

func TestDashboardGetSummary_UsaLaCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{expenseTotal: dec(100), lowStockCount: 1}
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache)

	// primer hit: calcula y guarda
	first, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// segundo hit: sale de la caché sin recalcular
	repo.lowStockErr = errors.New("db caída: si consulta, falla")
	second, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.LowStockCount, second.LowStockCount)
	assert.True(t, second.MonthBurn.Equal(first.MonthBurn))
	assert.Equal(t, 1, cache.sets, "el hit de caché no vuelve a escribir")
}

func TestDashboardGetSummary_SinCacheFunciona(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewDashboardUseCase(repo, nil)

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sum.RecentExpenses)
	assert.NotNil(t, sum.ProductsInStock)
	assert.IsType(t, &dto.DashboardSummaryDTO{}, sum)
}
