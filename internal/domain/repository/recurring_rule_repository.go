package repository

import "github.com/misulabs/misu-erp/internal/domain/entity"

// RecurringRuleRepository define el puerto de persistencia para RecurringRule.
// List devuelve las reglas con el proveedor embebido, ordenadas por próxima fecha de cobro.
type RecurringRuleRepository interface {
	Create(r *entity.RecurringRule) error
	GetByID(id string) (*entity.RecurringRule, error)
	List() ([]*entity.RecurringRule, error)
	Update(r *entity.RecurringRule) error
	Delete(id string) error
}
