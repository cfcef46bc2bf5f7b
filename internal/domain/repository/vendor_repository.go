package repository

import "github.com/misulabs/misu-erp/internal/domain/entity"

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(v *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	List() ([]*entity.Vendor, error)
	Update(v *entity.Vendor) error
	Delete(id string) error
}
