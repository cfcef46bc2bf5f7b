package repository

import (
	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para Component.
// GetForUpdate y ConsumeStock se usan dentro de transacciones del motor de
// ensamblaje para garantizar consistencia.
type ComponentRepository interface {
	Create(c *entity.Component) error
	GetByID(id string) (*entity.Component, error)
	List() ([]*entity.Component, error)
	ListLowStock() ([]*entity.Component, error)
	Update(c *entity.Component) error
	// UpdateStock escribe el nuevo stock absoluto (ajustes manuales y restock).
	UpdateStock(id string, newStock decimal.Decimal) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Component, error)
	// ConsumeStock descuenta amount de forma condicional:
	// UPDATE ... SET current_stock = current_stock - $a WHERE id = $1 AND current_stock >= $a.
	// Devuelve false si la condición no se cumplió (0 filas afectadas).
	ConsumeStock(id string, amount decimal.Decimal) (bool, error)
	Delete(id string) error
}
