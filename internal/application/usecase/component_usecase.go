package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ComponentUseCase casos de uso CRUD y de stock para materias primas.
// El consumo por ensamblaje NO pasa por aquí: lo hace el motor transaccional.
type ComponentUseCase struct {
	repo repository.ComponentRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(repo repository.ComponentRepository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo}
}

// Create crea una materia prima. Stock y umbral no pueden ser negativos.
func (uc *ComponentUseCase) Create(in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.SafetyStockThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Component{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		CurrentStock:         in.CurrentStock,
		UnitType:             in.UnitType,
		CostPerUnit:          in.CostPerUnit,
		SafetyStockThreshold: in.SafetyStockThreshold,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *ComponentUseCase) GetByID(id string) (*dto.ComponentResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toComponentResponse(c), nil
}

// List lista todas las materias primas ordenadas por nombre.
func (uc *ComponentUseCase) List() ([]dto.ComponentResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComponentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, *toComponentResponse(c))
	}
	return out, nil
}

// Update actualiza nombre, unidad, costo y umbral. No toca CurrentStock.
func (uc *ComponentUseCase) Update(id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = *in.Name
	}
	if in.UnitType != nil {
		c.UnitType = *in.UnitType
	}
	if in.CostPerUnit != nil {
		c.CostPerUnit = in.CostPerUnit
	}
	if in.SafetyStockThreshold != nil {
		if in.SafetyStockThreshold.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		c.SafetyStockThreshold = *in.SafetyStockThreshold
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

// AdjustStock ajuste manual con operación enumerada (add | subtract | set).
// subtract nunca deja stock negativo: el resultado se acota en cero, igual que
// el formulario original de ajuste rápido.
func (uc *ComponentUseCase) AdjustStock(id string, in dto.AdjustStockRequest) (*dto.ComponentResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	var newStock decimal.Decimal
	switch in.Operation {
	case entity.StockOpAdd:
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		newStock = c.CurrentStock.Add(in.Quantity)
	case entity.StockOpSubtract:
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		newStock = c.CurrentStock.Sub(in.Quantity)
		if newStock.IsNegative() {
			newStock = decimal.Zero
		}
	case entity.StockOpSet:
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		newStock = in.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := uc.repo.UpdateStock(id, newStock); err != nil {
		return nil, err
	}
	c.CurrentStock = newStock
	c.UpdatedAt = time.Now()
	return toComponentResponse(c), nil
}

// Restock repone stock (atajo de operation=add).
func (uc *ComponentUseCase) Restock(id string, in dto.RestockRequest) (*dto.ComponentResponse, error) {
	return uc.AdjustStock(id, dto.AdjustStockRequest{
		Quantity:  in.Quantity,
		Operation: entity.StockOpAdd,
	})
}

// ListLowStock lista los componentes bajo su umbral de seguridad ordenados por
// déficit descendente (los más urgentes primero).
func (uc *ComponentUseCase) ListLowStock() ([]dto.LowStockComponentDTO, error) {
	items, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockComponentDTO, 0, len(items))
	for _, c := range items {
		out = append(out, dto.LowStockComponentDTO{
			ComponentResponse: *toComponentResponse(c),
			Deficit:           c.SafetyStockThreshold.Sub(c.CurrentStock),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deficit.GreaterThan(out[j].Deficit)
	})
	return out, nil
}

// Delete elimina una materia prima. Las líneas de BOM que la referencien
// quedan con la referencia rota y el motor las trata como inertes.
func (uc *ComponentUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toComponentResponse(c *entity.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		CurrentStock:         c.CurrentStock,
		UnitType:             c.UnitType,
		CostPerUnit:          c.CostPerUnit,
		SafetyStockThreshold: c.SafetyStockThreshold,
		LowStock:             c.IsLowStock(),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
