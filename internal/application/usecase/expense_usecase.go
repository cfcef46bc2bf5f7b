package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// Formato de fecha contable en la API (solo día).
const dateLayout = "2006-01-02"

// ExpenseUseCase casos de uso CRUD del libro de gastos.
type ExpenseUseCase struct {
	repo       repository.ExpenseRepository
	vendorRepo repository.VendorRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, vendorRepo repository.VendorRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, vendorRepo: vendorRepo}
}

// Create registra un gasto. El monto debe ser positivo, la categoría pertenecer
// al conjunto cerrado y el proveedor (si viene) existir.
func (uc *ExpenseUseCase) Create(in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := parseDay(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidExpenseCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.VendorID != "" {
		v, err := uc.vendorRepo.GetByID(in.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.ErrNotFound
		}
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Date:        date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		VendorID:    in.VendorID,
		IsRecurring: in.IsRecurring,
		ReceiptURL:  in.ReceiptURL,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetByID obtiene un gasto por ID.
func (uc *ExpenseUseCase) GetByID(id string) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(e), nil
}

// List lista gastos paginados, más reciente primero.
func (uc *ExpenseUseCase) List(page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

// ListByMonth lista los gastos de un mes calendario (YYYY-MM).
func (uc *ExpenseUseCase) ListByMonth(month string) ([]dto.ExpenseResponse, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end := start.AddDate(0, 1, 0)
	items, err := uc.repo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

// Update actualiza un gasto existente.
func (uc *ExpenseUseCase) Update(id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != nil {
		date, err := parseDay(*in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		e.Date = date
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		if !entity.ValidExpenseCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		e.Category = *in.Category
	}
	if in.VendorID != nil {
		if *in.VendorID != "" {
			v, err := uc.vendorRepo.GetByID(*in.VendorID)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, domain.ErrNotFound
			}
		}
		e.VendorID = *in.VendorID
		e.Vendor = nil
	}
	if in.IsRecurring != nil {
		e.IsRecurring = *in.IsRecurring
	}
	if in.ReceiptURL != nil {
		e.ReceiptURL = *in.ReceiptURL
	}
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func parseDay(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	r := &dto.ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		VendorID:    e.VendorID,
		IsRecurring: e.IsRecurring,
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
	}
	if e.Vendor != nil {
		r.Vendor = toVendorResponse(e.Vendor)
	}
	return r
}
