package usecase

import (
	"github.com/google/uuid"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// RecurringUseCase casos de uso CRUD de cargos recurrentes (suscripciones a
// proveedores). Las reglas no generan gastos solas: son un recordatorio con
// fecha de próximo cobro.
type RecurringUseCase struct {
	repo       repository.RecurringRuleRepository
	vendorRepo repository.VendorRepository
}

// NewRecurringUseCase construye el caso de uso.
func NewRecurringUseCase(repo repository.RecurringRuleRepository, vendorRepo repository.VendorRepository) *RecurringUseCase {
	return &RecurringUseCase{repo: repo, vendorRepo: vendorRepo}
}

// Create crea un cargo recurrente. Por defecto queda activo.
func (uc *RecurringUseCase) Create(in dto.RecurringRuleRequest) (*dto.RecurringRuleResponse, error) {
	r := &entity.RecurringRule{
		ID:     uuid.New().String(),
		Active: true,
	}
	if err := uc.applyRequest(r, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	return toRecurringResponse(r), nil
}

// GetByID obtiene un cargo recurrente por ID.
func (uc *RecurringUseCase) GetByID(id string) (*dto.RecurringRuleResponse, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRecurringResponse(r), nil
}

// List lista los cargos recurrentes ordenados por próxima fecha de cobro.
func (uc *RecurringUseCase) List() ([]dto.RecurringRuleResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecurringRuleResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *toRecurringResponse(r))
	}
	return out, nil
}

// Update actualiza un cargo recurrente. Los campos ausentes no cambian.
func (uc *RecurringUseCase) Update(id string, in dto.RecurringRuleRequest) (*dto.RecurringRuleResponse, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyRequest(r, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(r); err != nil {
		return nil, err
	}
	return toRecurringResponse(r), nil
}

// Delete elimina un cargo recurrente.
func (uc *RecurringUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *RecurringUseCase) applyRequest(r *entity.RecurringRule, in dto.RecurringRuleRequest) error {
	if in.VendorID != "" {
		v, err := uc.vendorRepo.GetByID(in.VendorID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		r.VendorID = in.VendorID
		r.Vendor = nil
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return domain.ErrInvalidInput
		}
		r.Amount = in.Amount
	}
	if in.Frequency != "" {
		if in.Frequency != entity.FrequencyMonthly && in.Frequency != entity.FrequencyYearly {
			return domain.ErrInvalidInput
		}
		r.Frequency = in.Frequency
	}
	if in.NextDueDate != "" {
		due, err := parseDay(in.NextDueDate)
		if err != nil {
			return domain.ErrInvalidInput
		}
		r.NextDueDate = &due
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	return nil
}

func toRecurringResponse(r *entity.RecurringRule) *dto.RecurringRuleResponse {
	out := &dto.RecurringRuleResponse{
		ID:        r.ID,
		VendorID:  r.VendorID,
		Amount:    r.Amount,
		Frequency: r.Frequency,
		Active:    r.Active,
	}
	if r.NextDueDate != nil {
		out.NextDueDate = r.NextDueDate.Format(dateLayout)
	}
	if r.Vendor != nil {
		out.Vendor = toVendorResponse(r.Vendor)
	}
	return out
}
