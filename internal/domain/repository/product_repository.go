package repository

import "github.com/misulabs/misu-erp/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(p *entity.Product) error
	// UpdateStock escribe el nuevo stock absoluto del producto terminado.
	UpdateStock(id string, newStock int64) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Product, error)
	Delete(id string) error
}
