package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/assembly"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD de productos terminados y mantenimiento
// de su BOM (lista de materiales).
type ProductUseCase struct {
	productRepo   repository.ProductRepository
	bomRepo       repository.BOMRepository
	componentRepo repository.ComponentRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	componentRepo repository.ComponentRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:   productRepo,
		bomRepo:       bomRepo,
		componentRepo: componentRepo,
	}
}

// Create crea un producto terminado. El BOM se agrega después, línea a línea.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SKU:          in.SKU,
		CurrentStock: in.CurrentStock,
		SalePrice:    in.SalePrice,
		SOPMarkdown:  in.SOPMarkdown,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return uc.toProductResponse(p, nil), nil
}

// GetByID obtiene un producto con su BOM y la cantidad máxima construible
// con el stock actual de componentes.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.bomRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(p, lines), nil
}

// List lista todos los productos sin BOM embebido (lectura liviana).
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	items, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *uc.toProductResponse(p, nil))
	}
	return out, nil
}

// Update actualiza los campos descriptivos del producto. El stock se mueve
// por ensamblaje o ajuste, nunca por esta operación.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.SalePrice != nil {
		p.SalePrice = in.SalePrice
	}
	if in.SOPMarkdown != nil {
		p.SOPMarkdown = *in.SOPMarkdown
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.toProductResponse(p, nil), nil
}

// Delete elimina un producto junto con sus líneas de BOM (cascada en BD).
func (uc *ProductUseCase) Delete(id string) error {
	return uc.productRepo.Delete(id)
}

// GetBOM devuelve las líneas del BOM de un producto.
func (uc *ProductUseCase) GetBOM(productID string) ([]dto.BOMLineResponse, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toBOMResponses(lines), nil
}

// UpsertBOMLine agrega o reemplaza la línea del BOM para un componente.
// Valida que producto y componente existan; la cantidad puede ser nula o cero
// (línea inerte que el motor omite), pero nunca negativa.
func (uc *ProductUseCase) UpsertBOMLine(productID string, in dto.BOMLineRequest) ([]dto.BOMLineResponse, error) {
	if in.ComponentID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityRequired != nil && in.QuantityRequired.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.componentRepo.GetByID(in.ComponentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	line := &entity.BOMLine{
		ID:               uuid.New().String(),
		ProductID:        productID,
		ComponentID:      in.ComponentID,
		QuantityRequired: in.QuantityRequired,
	}
	if err := uc.bomRepo.UpsertLine(line); err != nil {
		return nil, err
	}
	lines, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toBOMResponses(lines), nil
}

// DeleteBOMLine elimina una línea del BOM por su ID.
func (uc *ProductUseCase) DeleteBOMLine(lineID string) error {
	return uc.bomRepo.DeleteLine(lineID)
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product, lines []*entity.BOMLine) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		CurrentStock: p.CurrentStock,
		SalePrice:    p.SalePrice,
		SOPMarkdown:  p.SOPMarkdown,
		BOM:          toBOMResponses(lines),
		MaxBuildable: assembly.MaxBuildable(lines),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toBOMResponses(lines []*entity.BOMLine) []dto.BOMLineResponse {
	out := make([]dto.BOMLineResponse, 0, len(lines))
	for _, l := range lines {
		r := dto.BOMLineResponse{
			ID:               l.ID,
			ComponentID:      l.ComponentID,
			QuantityRequired: l.QuantityRequired,
			Usable:           l.Usable(),
		}
		if l.Component != nil {
			r.ComponentName = l.Component.Name
			stock := l.Component.CurrentStock
			r.ComponentStock = &stock
		}
		out = append(out, r)
	}
	return out
}
