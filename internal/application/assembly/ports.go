package assembly

import (
	"context"

	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// ensamblaje: todos los descuentos de componentes y el incremento del
// producto se confirman juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bomRepo repository.BOMRepository,
		componentRepo repository.ComponentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
