package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misulabs/misu-erp/internal/application/finance"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

type stubExpenseRepo struct {
	items    []*entity.Expense
	err      error
	gotStart time.Time
	gotEnd   time.Time
}

func (r *stubExpenseRepo) Create(*entity.Expense) error             { return nil }
func (r *stubExpenseRepo) GetByID(string) (*entity.Expense, error)  { return nil, nil }
func (r *stubExpenseRepo) List(int, int) ([]*entity.Expense, error) { return nil, nil }
func (r *stubExpenseRepo) Update(*entity.Expense) error             { return nil }
func (r *stubExpenseRepo) Delete(string) error                      { return nil }

func (r *stubExpenseRepo) ListByDateRange(start, end time.Time) ([]*entity.Expense, error) {
	r.gotStart, r.gotEnd = start, end
	return r.items, r.err
}

type stubPDFGenerator struct {
	got *finance.ExpenseReport
	out []byte
	err error
}

func (g *stubPDFGenerator) GenerateExpenseReport(_ context.Context, report *finance.ExpenseReport) ([]byte, error) {
	g.got = report
	return g.out, g.err
}

func TestDownloadMonthlyReport_ArmaElReporte(t *testing.T) {
	repo := &stubExpenseRepo{items: []*entity.Expense{
		{ID: "e1", Amount: dec(100), Category: entity.ExpenseCategoryOpEx},
		{ID: "e2", Amount: dec(40), Category: entity.ExpenseCategoryMarketing},
		{ID: "e3", Amount: dec(60), Category: entity.ExpenseCategoryOpEx},
	}}
	gen := &stubPDFGenerator{out: []byte("%PDF-1.7")}
	uc := finance.NewReportUseCase(repo, gen)

	pdf, filename, err := uc.DownloadMonthlyReport(context.Background(), "2026-08")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	assert.Equal(t, "gastos_2026_08.pdf", filename)

	// el repositorio recibe el mes completo [día 1, día 1 del siguiente)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), repo.gotStart)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), repo.gotEnd)

	// el generador recibe los totales ya resueltos
	require.NotNil(t, gen.got)
	assert.True(t, gen.got.Total.Equal(dec(200)))
	require.Len(t, gen.got.Categories, 3)
	assert.Equal(t, entity.ExpenseCategoryOpEx, gen.got.Categories[0].Category)
	assert.True(t, gen.got.Categories[0].Total.Equal(dec(160)))
	assert.True(t, gen.got.Categories[1].Total.Equal(decimal.Zero), "COGS sin gastos vale cero")
	assert.True(t, gen.got.Categories[2].Total.Equal(dec(40)))
}

// Un mes sin gastos produce un reporte vacío válido, no un error.
func TestDownloadMonthlyReport_MesVacio(t *testing.T) {
	gen := &stubPDFGenerator{out: []byte("%PDF-1.7")}
	uc := finance.NewReportUseCase(&stubExpenseRepo{}, gen)

	pdf, _, err := uc.DownloadMonthlyReport(context.Background(), "2026-02")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Empty(t, gen.got.Expenses)
	assert.True(t, gen.got.Total.Equal(decimal.Zero))
}

func TestDownloadMonthlyReport_Fallos(t *testing.T) {
	uc := finance.NewReportUseCase(&stubExpenseRepo{}, &stubPDFGenerator{})

	_, _, err := uc.DownloadMonthlyReport(context.Background(), "agosto-2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repoErr := errors.New("db: timeout")
	uc = finance.NewReportUseCase(&stubExpenseRepo{err: repoErr}, &stubPDFGenerator{})
	_, _, err = uc.DownloadMonthlyReport(context.Background(), "2026-08")
	assert.ErrorIs(t, err, repoErr)

	genErr := errors.New("render: página corrupta")
	uc = finance.NewReportUseCase(&stubExpenseRepo{}, &stubPDFGenerator{err: genErr})
	_, _, err = uc.DownloadMonthlyReport(context.Background(), "2026-08")
	assert.ErrorIs(t, err, genErr)
}
