package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/misulabs/misu-erp/internal/application/assembly"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// Ensure TxRunner implements assembly.TxRunner.
var _ assembly.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de ensamblaje
// atados a la tx y hace Commit o Rollback. Si fn devuelve error no se aplica
// ninguna escritura.
func (r *TxRunner) Run(ctx context.Context, fn func(
	bomRepo repository.BOMRepository,
	componentRepo repository.ComponentRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bomRepo := NewBOMRepository(tx)
	componentRepo := NewComponentRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(bomRepo, componentRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
