package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.MetricRepository = (*MetricRepo)(nil)

const metricColumns = `id, month, new_subscribers, churned_subscribers, active_subscribers, marketing_spend, total_revenue, created_at`

// MetricRepo implementación del puerto MetricRepository sobre PostgreSQL.
type MetricRepo struct {
	q Querier
}

// NewMetricRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetricRepository(q Querier) *MetricRepo {
	return &MetricRepo{q: q}
}

// Create persiste la métrica de un mes. El índice único sobre month convierte
// el mes duplicado en domain.ErrDuplicate.
func (r *MetricRepo) Create(m *entity.MonthlyMetric) error {
	query := `
		INSERT INTO monthly_metrics (id, month, new_subscribers, churned_subscribers, active_subscribers, marketing_spend, total_revenue, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Month, m.NewSubscribers, m.ChurnedSubscribers, m.ActiveSubscribers,
		m.MarketingSpend, m.TotalRevenue, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert monthly metric: %w", err)
	}
	return nil
}

// GetByID obtiene una métrica por ID. Devuelve (nil, nil) si no existe.
func (r *MetricRepo) GetByID(id string) (*entity.MonthlyMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM monthly_metrics WHERE id = $1`
	var m entity.MonthlyMetric
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Month, &m.NewSubscribers, &m.ChurnedSubscribers, &m.ActiveSubscribers,
		&m.MarketingSpend, &m.TotalRevenue, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly metric: %w", err)
	}
	return &m, nil
}

// List lista las métricas en orden cronológico.
func (r *MetricRepo) List() ([]*entity.MonthlyMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM monthly_metrics ORDER BY month`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list monthly metrics: %w", err)
	}
	defer rows.Close()

	var results []*entity.MonthlyMetric
	for rows.Next() {
		var m entity.MonthlyMetric
		if err := rows.Scan(
			&m.ID, &m.Month, &m.NewSubscribers, &m.ChurnedSubscribers, &m.ActiveSubscribers,
			&m.MarketingSpend, &m.TotalRevenue, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan monthly metric: %w", err)
		}
		results = append(results, &m)
	}
	return results, rows.Err()
}

// Update reemplaza los valores de una métrica.
func (r *MetricRepo) Update(m *entity.MonthlyMetric) error {
	query := `
		UPDATE monthly_metrics SET month = $2, new_subscribers = $3, churned_subscribers = $4,
			active_subscribers = $5, marketing_spend = $6, total_revenue = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Month, m.NewSubscribers, m.ChurnedSubscribers, m.ActiveSubscribers,
		m.MarketingSpend, m.TotalRevenue,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update monthly metric: %w", err)
	}
	return nil
}

// Delete elimina una métrica mensual.
func (r *MetricRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM monthly_metrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete monthly metric: %w", err)
	}
	return nil
}
