// Package assembly implementa el caso de uso transaccional de ensamblaje:
// convierte el BOM de un producto y una cantidad solicitada en una
// transferencia de stock validada y atómica (componentes → producto terminado).
package assembly

import (
	"context"
	"fmt"
	"sort"

	"github.com/misulabs/misu-erp/internal/domain"
	domassembly "github.com/misulabs/misu-erp/internal/domain/assembly"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// UseCase ejecuta ensamblajes dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) y descuento condicional, y expone la cantidad máxima
// construible como lectura derivada.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
	opts        domassembly.Options
}

// NewUseCase construye el caso de uso. productRepo y bomRepo se usan para
// lecturas fuera de transacción (existencia del producto, max buildable).
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	opts domassembly.Options,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		bomRepo:     bomRepo,
		opts:        opts,
	}
}

// Result es el resultado de un ensamblaje exitoso.
type Result struct {
	ProductID       string
	Quantity        int64
	NewProductStock int64
	Consumed        []domassembly.Requirement
}

// Assemble construye quantity unidades de productID consumiendo su BOM.
//
// Secuencia dentro de UNA transacción:
//  1. lee las líneas del BOM (snapshot consistente de la tx)
//  2. bloquea las filas de los componentes usables en orden determinista
//     (SELECT FOR UPDATE; el orden por ID evita deadlocks entre ensamblajes
//     concurrentes con componentes en común)
//  3. valida todas las líneas contra el stock bloqueado — sin mutar nada
//  4. aplica los descuentos con UPDATE condicional (stock >= requerido);
//     cero filas afectadas → ErrConflict y rollback completo
//  5. incrementa el stock del producto terminado
//
// El context se respeta hasta que inicia la transacción; una vez dentro, la
// operación corre hasta Commit o Rollback.
func (uc *UseCase) Assemble(ctx context.Context, productID string, quantity int64) (*Result, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("cantidad a ensamblar debe ser positiva: %w", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var result *Result
	err = uc.txRunner.Run(ctx, func(
		bomRepo repository.BOMRepository,
		componentRepo repository.ComponentRepository,
		productRepo repository.ProductRepository,
	) error {
		lines, err := bomRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrNoBOMDefined
		}

		if err := lockComponents(componentRepo, lines); err != nil {
			return err
		}

		// Pase de validación: examina todas las líneas antes de tocar stock.
		reqs, err := domassembly.Plan(lines, quantity, uc.opts)
		if err != nil {
			return err
		}

		// Pase de aplicación: descuento condicional por línea. Con las filas ya
		// bloqueadas la condición no debería fallar; si falla, otra tx invalidó
		// el supuesto y todo se revierte.
		for _, req := range reqs {
			ok, err := componentRepo.ConsumeStock(req.ComponentID, req.Required)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("stock de %s cambió durante el ensamblaje: %w",
					req.ComponentName, domain.ErrConflict)
			}
		}

		// Producción: releer el producto bajo lock e incrementar.
		locked, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock := locked.CurrentStock + quantity
		if err := productRepo.UpdateStock(productID, newStock); err != nil {
			return err
		}

		result = &Result{
			ProductID:       productID,
			Quantity:        quantity,
			NewProductStock: newStock,
			Consumed:        reqs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MaxBuildable devuelve cuántas unidades completas permite el stock actual.
// Lectura point-in-time fuera de transacción: acota el input de la UI y sirve
// de pre-chequeo, pero la verdad final la decide Assemble dentro de su tx.
func (uc *UseCase) MaxBuildable(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	lines, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return 0, err
	}
	return domassembly.MaxBuildable(lines), nil
}

// lockComponents bloquea las filas de los componentes usables en orden por ID
// y refresca el snapshot de stock de cada línea con el valor bajo lock.
func lockComponents(componentRepo repository.ComponentRepository, lines []*entity.BOMLine) error {
	usable := make([]*entity.BOMLine, 0, len(lines))
	for _, l := range lines {
		if l.Usable() {
			usable = append(usable, l)
		}
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].Component.ID < usable[j].Component.ID })

	for _, l := range usable {
		locked, err := componentRepo.GetForUpdate(l.Component.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			// El componente desapareció entre la lectura del BOM y el lock.
			return fmt.Errorf("componente %s: %w", l.Component.ID, domain.ErrConflict)
		}
		l.Component = locked
	}
	return nil
}
