package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD de proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor. La categoría por defecto, si viene, debe ser válida.
func (uc *VendorUseCase) Create(in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DefaultCategory != "" && !entity.ValidExpenseCategory(in.DefaultCategory) {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vendor{
		ID:              uuid.New().String(),
		Name:            in.Name,
		DefaultCategory: in.DefaultCategory,
		WebsiteURL:      in.WebsiteURL,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *VendorUseCase) GetByID(id string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(v), nil
}

// List lista los proveedores ordenados por nombre.
func (uc *VendorUseCase) List() ([]dto.VendorResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(items))
	for _, v := range items {
		out = append(out, *toVendorResponse(v))
	}
	return out, nil
}

// Update actualiza un proveedor.
func (uc *VendorUseCase) Update(id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		v.Name = *in.Name
	}
	if in.DefaultCategory != nil {
		if *in.DefaultCategory != "" && !entity.ValidExpenseCategory(*in.DefaultCategory) {
			return nil, domain.ErrInvalidInput
		}
		v.DefaultCategory = *in.DefaultCategory
	}
	if in.WebsiteURL != nil {
		v.WebsiteURL = *in.WebsiteURL
	}
	if err := uc.repo.Update(v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// Delete elimina un proveedor. Los gastos que lo referencien quedan sin asignar.
func (uc *VendorUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:              v.ID,
		Name:            v.Name,
		DefaultCategory: v.DefaultCategory,
		WebsiteURL:      v.WebsiteURL,
	}
}
