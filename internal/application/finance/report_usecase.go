package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ReportUseCase genera el libro de gastos de un mes en PDF.
type ReportUseCase struct {
	expenseRepo repository.ExpenseRepository
	generator   ExpensePDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(expenseRepo repository.ExpenseRepository, generator ExpensePDFGenerator) *ReportUseCase {
	return &ReportUseCase{expenseRepo: expenseRepo, generator: generator}
}

// DownloadMonthlyReport arma el libro de gastos del mes (YYYY-MM) y lo
// renderiza en PDF. Un mes sin gastos produce un reporte vacío válido.
//
// Retorna (pdfBytes, filename, nil) o domain.ErrInvalidInput si el mes
// no parsea.
func (uc *ReportUseCase) DownloadMonthlyReport(
	ctx context.Context,
	month string,
) (pdfBytes []byte, filename string, err error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", domain.ErrInvalidInput
	}
	end := start.AddDate(0, 1, 0)

	expenses, err := uc.expenseRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener gastos: %w", err)
	}

	byCategory := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}
	categories := make([]CategoryLine, 0, 3)
	for _, name := range [...]string{
		entity.ExpenseCategoryOpEx,
		entity.ExpenseCategoryCOGS,
		entity.ExpenseCategoryMarketing,
	} {
		categories = append(categories, CategoryLine{Category: name, Total: byCategory[name]})
	}

	report := &ExpenseReport{
		Month:      start,
		Expenses:   expenses,
		Categories: categories,
		Total:      total,
	}

	pdfBytes, err = uc.generator.GenerateExpenseReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("gastos_%s.pdf", start.Format("2006_01"))
	return pdfBytes, filename, nil
}
