package repository

import (
	"time"

	"github.com/misulabs/misu-erp/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
// List devuelve los gastos con el proveedor embebido, más reciente primero.
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(limit, offset int) ([]*entity.Expense, error)
	ListByDateRange(start, end time.Time) ([]*entity.Expense, error)
	Update(e *entity.Expense) error
	Delete(id string) error
}
