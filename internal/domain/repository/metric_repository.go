package repository

import "github.com/misulabs/misu-erp/internal/domain/entity"

// MetricRepository define el puerto de persistencia para las métricas
// mensuales de suscripción. List devuelve las filas ordenadas por mes.
type MetricRepository interface {
	Create(m *entity.MonthlyMetric) error
	GetByID(id string) (*entity.MonthlyMetric, error)
	List() ([]*entity.MonthlyMetric, error)
	Update(m *entity.MonthlyMetric) error
	Delete(id string) error
}
