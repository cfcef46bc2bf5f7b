// Package assembly contiene la lógica pura del motor de ensamblaje (kitting):
// validación de un BOM contra una cantidad solicitada, cálculo del consumo por
// línea y cantidad máxima construible. No toca persistencia; el caso de uso
// transaccional vive en internal/application/assembly.
package assembly

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
)

// Options controla el tratamiento de líneas malformadas del BOM.
// Con StrictLines=false (comportamiento original) una línea sin componente o
// con cantidad requerida nula/<= 0 se omite en silencio; con StrictLines=true
// la línea malformada bloquea el ensamblaje con ErrInvalidInput.
type Options struct {
	StrictLines bool
}

// Requirement es el consumo calculado para una línea usable del BOM.
type Requirement struct {
	ComponentID   string
	ComponentName string
	Required      decimal.Decimal
	Available     decimal.Decimal
}

// InsufficientStockError indica que una línea del BOM no alcanza el stock
// requerido. Envuelve domain.ErrInsufficientStock para errors.Is.
type InsufficientStockError struct {
	ComponentName string
	Required      decimal.Decimal
	Available     decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("materia prima insuficiente: %s (necesita %s, hay %s)",
		e.ComponentName, e.Required.String(), e.Available.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// Plan valida el BOM completo contra la cantidad solicitada y devuelve el
// consumo por línea usable. No muta nada: si alguna línea no es satisfacible
// retorna InsufficientStockError y el caller no debe aplicar ningún descuento.
//
// Reglas:
//   - quantity <= 0              → ErrInvalidInput
//   - BOM vacío o ausente        → ErrNoBOMDefined
//   - línea inerte               → se omite (o ErrInvalidInput con StrictLines)
//   - stock < quantity×requerido → InsufficientStockError (nombra el componente)
func Plan(lines []*entity.BOMLine, quantity int64, opts Options) ([]Requirement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("cantidad a ensamblar debe ser positiva: %w", domain.ErrInvalidInput)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoBOMDefined
	}

	qty := decimal.NewFromInt(quantity)
	reqs := make([]Requirement, 0, len(lines))
	for _, line := range lines {
		if !line.Usable() {
			if opts.StrictLines {
				return nil, fmt.Errorf("línea de BOM %s malformada (componente o cantidad requerida ausente): %w",
					line.ID, domain.ErrInvalidInput)
			}
			continue
		}
		required := qty.Mul(*line.QuantityRequired)
		available := line.Component.CurrentStock
		if available.LessThan(required) {
			return nil, &InsufficientStockError{
				ComponentName: line.Component.Name,
				Required:      required,
				Available:     available,
			}
		}
		reqs = append(reqs, Requirement{
			ComponentID:   line.Component.ID,
			ComponentName: line.Component.Name,
			Required:      required,
			Available:     available,
		})
	}
	return reqs, nil
}

// MaxBuildable devuelve cuántas unidades completas se pueden construir con el
// stock actual: min(floor(stock / requerido)) sobre las líneas usables.
// Un BOM sin líneas usables devuelve 0, nunca "ilimitado".
func MaxBuildable(lines []*entity.BOMLine) int64 {
	var min int64
	found := false
	for _, line := range lines {
		if !line.Usable() {
			continue
		}
		can := line.Component.CurrentStock.Div(*line.QuantityRequired).Floor().IntPart()
		if can < 0 {
			can = 0
		}
		if !found || can < min {
			min = can
			found = true
		}
	}
	if !found {
		return 0
	}
	return min
}
