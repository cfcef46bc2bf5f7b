package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListByProduct devuelve las líneas del BOM con el snapshot del componente
// embebido. El LEFT JOIN conserva las líneas cuya referencia de componente
// está rota (component_id nulo): salen con Component nil y el motor las
// trata como inertes.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BOMLine, error) {
	query := `
		SELECT b.id, b.product_id, COALESCE(b.component_id::text, ''), b.quantity_required,
		       c.id, c.name, c.current_stock, c.unit_type, c.cost_per_unit, c.safety_stock_threshold, c.created_at, c.updated_at
		FROM bom_lines b
		LEFT JOIN components c ON c.id = b.component_id
		WHERE b.product_id = $1
		ORDER BY b.created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	var results []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		// columnas del componente anulables: el LEFT JOIN puede no casar
		var (
			cID, cName, cUnit  *string
			cStock, cThreshold *decimal.Decimal
			cCost              *decimal.Decimal
			cCreated, cUpdated *time.Time
		)
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.ComponentID, &l.QuantityRequired,
			&cID, &cName, &cStock, &cUnit, &cCost, &cThreshold, &cCreated, &cUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		if cID != nil {
			c := &entity.Component{ID: *cID}
			if cName != nil {
				c.Name = *cName
			}
			if cStock != nil {
				c.CurrentStock = *cStock
			}
			if cUnit != nil {
				c.UnitType = *cUnit
			}
			c.CostPerUnit = cCost
			if cThreshold != nil {
				c.SafetyStockThreshold = *cThreshold
			}
			if cCreated != nil {
				c.CreatedAt = *cCreated
			}
			if cUpdated != nil {
				c.UpdatedAt = *cUpdated
			}
			l.Component = c
		}
		results = append(results, &l)
	}
	return results, rows.Err()
}

// UpsertLine agrega la línea o reemplaza la cantidad si el par
// (product_id, component_id) ya existe.
func (r *BOMRepo) UpsertLine(line *entity.BOMLine) error {
	query := `
		INSERT INTO bom_lines (id, product_id, component_id, quantity_required, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, component_id)
		DO UPDATE SET quantity_required = EXCLUDED.quantity_required`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductID, line.ComponentID, line.QuantityRequired,
	)
	if err != nil {
		return fmt.Errorf("upsert bom line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea del BOM por su ID.
func (r *BOMRepo) DeleteLine(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bom_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom line: %w", err)
	}
	return nil
}
