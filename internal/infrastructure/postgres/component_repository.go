package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

const componentColumns = `id, name, current_stock, unit_type, cost_per_unit, safety_stock_threshold, created_at, updated_at`

// ComponentRepo implementación del puerto ComponentRepository sobre PostgreSQL (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

// Create persiste una nueva materia prima.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO components (id, name, current_stock, unit_type, cost_per_unit, safety_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.CurrentStock, c.UnitType, c.CostPerUnit, c.SafetyStockThreshold,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID. Devuelve (nil, nil) si no existe.
func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List lista todas las materias primas ordenadas por nombre.
func (r *ComponentRepo) List() ([]*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

// ListLowStock lista los componentes con stock estrictamente bajo su umbral.
func (r *ComponentRepo) ListLowStock() ([]*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE current_stock < safety_stock_threshold ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

// Update actualiza los campos descriptivos. No toca current_stock.
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `
		UPDATE components SET name = $2, unit_type = $3, cost_per_unit = $4, safety_stock_threshold = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.UnitType, c.CostPerUnit, c.SafetyStockThreshold, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo stock absoluto (restock y ajustes manuales).
func (r *ComponentRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE components SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update component stock: %w", err)
	}
	return nil
}

// GetForUpdate bloquea la fila del componente dentro de la transacción actual.
// Devuelve (nil, nil) si la fila ya no existe.
func (r *ComponentRepo) GetForUpdate(id string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ConsumeStock descuenta amount de forma condicional. La guarda
// current_stock >= amount en el propio UPDATE garantiza que el stock nunca
// queda negativo aunque otra transacción lo haya movido; devuelve false si la
// condición no se cumplió (0 filas afectadas).
func (r *ComponentRepo) ConsumeStock(id string, amount decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE components
		 SET current_stock = current_stock - $2, updated_at = now()
		 WHERE id = $1 AND current_stock >= $2`,
		id, amount,
	)
	if err != nil {
		return false, fmt.Errorf("consume component stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Delete elimina la materia prima. Las líneas de BOM que la referencian
// quedan con component_id nulo (ON DELETE SET NULL).
func (r *ComponentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	return nil
}

func (r *ComponentRepo) scanOne(row pgx.Row) (*entity.Component, error) {
	var c entity.Component
	err := row.Scan(
		&c.ID, &c.Name, &c.CurrentStock, &c.UnitType, &c.CostPerUnit,
		&c.SafetyStockThreshold, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &c, nil
}

func scanComponents(rows pgx.Rows) ([]*entity.Component, error) {
	var results []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(
			&c.ID, &c.Name, &c.CurrentStock, &c.UnitType, &c.CostPerUnit,
			&c.SafetyStockThreshold, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		results = append(results, &c)
	}
	return results, rows.Err()
}
