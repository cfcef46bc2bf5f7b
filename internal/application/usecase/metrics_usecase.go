package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// Formato de mes calendario en la API.
const monthLayout = "2006-01"

// Meses de vida estimada de un suscriptor para el cálculo de LTV.
var ltvLifetimeMonths = decimal.NewFromInt(6)

// MetricsUseCase casos de uso de las métricas mensuales de suscripción y de
// la serie derivada "growth pulse" (ARPU, LTV, CAC y su razón).
type MetricsUseCase struct {
	repo          repository.MetricRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewMetricsUseCase construye el caso de uso.
func NewMetricsUseCase(repo repository.MetricRepository, analyticsRepo repository.AnalyticsRepository) *MetricsUseCase {
	return &MetricsUseCase{repo: repo, analyticsRepo: analyticsRepo}
}

// Create registra la métrica de un mes. El mes se normaliza al día 1 y solo
// puede existir una fila por mes (único en BD).
func (uc *MetricsUseCase) Create(in dto.MetricRequest) (*dto.MetricResponse, error) {
	m := &entity.MonthlyMetric{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	if err := applyMetricRequest(m, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return toMetricResponse(m), nil
}

// GetByID obtiene una métrica por ID.
func (uc *MetricsUseCase) GetByID(id string) (*dto.MetricResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMetricResponse(m), nil
}

// List lista las métricas ordenadas por mes ascendente.
func (uc *MetricsUseCase) List() ([]dto.MetricResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetricResponse, 0, len(items))
	for _, m := range items {
		out = append(out, *toMetricResponse(m))
	}
	return out, nil
}

// Update reemplaza los valores de una métrica existente.
func (uc *MetricsUseCase) Update(id string, in dto.MetricRequest) (*dto.MetricResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyMetricRequest(m, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toMetricResponse(m), nil
}

// Delete elimina una métrica mensual.
func (uc *MetricsUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// GrowthPulse deriva la serie ARPU/LTV/CAC por mes a partir de las métricas
// registradas. Las divisiones con denominador cero devuelven cero en vez de
// propagar un error: un mes sin suscriptores activos o sin altas simplemente
// no aporta señal.
func (uc *MetricsUseCase) GrowthPulse() ([]dto.GrowthPointDTO, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.GrowthPointDTO, 0, len(items))
	for _, m := range items {
		p := dto.GrowthPointDTO{
			Month:             m.Month.Format(monthLayout),
			ActiveSubscribers: m.ActiveSubscribers,
		}
		if m.ActiveSubscribers > 0 {
			p.ARPU = m.TotalRevenue.Div(decimal.NewFromInt(m.ActiveSubscribers))
		}
		p.LTV = p.ARPU.Mul(ltvLifetimeMonths)
		if m.NewSubscribers > 0 {
			p.CAC = m.MarketingSpend.Div(decimal.NewFromInt(m.NewSubscribers))
		}
		if p.CAC.IsPositive() {
			p.Ratio = p.LTV.Div(p.CAC)
		}
		out = append(out, p)
	}
	return out, nil
}

// MarketingSpend suma el gasto de Marketing del libro mayor para un mes,
// usado para prellenar el formulario de métricas.
func (uc *MetricsUseCase) MarketingSpend(ctx context.Context, month string) (*dto.MarketingSpendResponse, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end := start.AddDate(0, 1, 0)
	total, err := uc.analyticsRepo.GetExpenseTotal(ctx, start, end, entity.ExpenseCategoryMarketing)
	if err != nil {
		return nil, err
	}
	return &dto.MarketingSpendResponse{Month: month, Total: total}, nil
}

func applyMetricRequest(m *entity.MonthlyMetric, in dto.MetricRequest) error {
	month, err := time.Parse(monthLayout, in.Month)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if in.NewSubscribers < 0 || in.ChurnedSubscribers < 0 || in.ActiveSubscribers < 0 {
		return domain.ErrInvalidInput
	}
	if in.MarketingSpend.IsNegative() || in.TotalRevenue.IsNegative() {
		return domain.ErrInvalidInput
	}
	m.Month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.NewSubscribers = in.NewSubscribers
	m.ChurnedSubscribers = in.ChurnedSubscribers
	m.ActiveSubscribers = in.ActiveSubscribers
	m.MarketingSpend = in.MarketingSpend
	m.TotalRevenue = in.TotalRevenue
	return nil
}

func toMetricResponse(m *entity.MonthlyMetric) *dto.MetricResponse {
	return &dto.MetricResponse{
		ID:                 m.ID,
		Month:              m.Month.Format(monthLayout),
		NewSubscribers:     m.NewSubscribers,
		ChurnedSubscribers: m.ChurnedSubscribers,
		ActiveSubscribers:  m.ActiveSubscribers,
		MarketingSpend:     m.MarketingSpend,
		TotalRevenue:       m.TotalRevenue,
	}
}
