package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y la analítica
// de gasto. Siempre trabaja sobre el pool: no participa en transacciones.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetExpenseTotal suma los gastos con date en [start, end); category vacío
// suma todas las categorías. COALESCE devuelve cero en períodos sin gastos.
func (r *AnalyticsRepo) GetExpenseTotal(
	ctx context.Context,
	start, end time.Time,
	category string,
) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM expenses
	WHERE date >= $1 AND date < $2
	  AND ($3 = '' OR category = $3)`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end, category).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetExpenseTotal: %w", err)
	}
	return total, nil
}

// GetCategoryTotals agrupa el gasto del rango por categoría. Solo devuelve
// filas para categorías con gastos; el caller completa las vacías.
func (r *AnalyticsRepo) GetCategoryTotals(
	ctx context.Context,
	start, end time.Time,
) ([]repository.CategoryTotalResult, error) {
	const query = `
	SELECT category, COALESCE(SUM(amount), 0) AS total
	FROM expenses
	WHERE date >= $1 AND date < $2
	GROUP BY category
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCategoryTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryTotalResult
	for rows.Next() {
		var row repository.CategoryTotalResult
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetCategoryTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetVendorTotals agrupa el gasto del rango por proveedor, descendente por
// total. Los gastos sin proveedor se consolidan en el grupo "Unassigned".
func (r *AnalyticsRepo) GetVendorTotals(
	ctx context.Context,
	start, end time.Time,
) ([]repository.VendorTotalResult, error) {
	const query = `
	SELECT COALESCE(v.name, 'Unassigned') AS vendor_name, SUM(e.amount) AS total
	FROM expenses e
	LEFT JOIN vendors v ON v.id = e.vendor_id
	WHERE e.date >= $1 AND e.date < $2
	GROUP BY v.name
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetVendorTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.VendorTotalResult
	for rows.Next() {
		var row repository.VendorTotalResult
		if err := rows.Scan(&row.VendorName, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetVendorTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyTotals agrupa el gasto por mes calendario, últimos n meses con
// datos, en orden cronológico.
func (r *AnalyticsRepo) GetMonthlyTotals(
	ctx context.Context,
	months int,
) ([]repository.MonthlyTotalResult, error) {
	const query = `
	SELECT month, total FROM (
		SELECT date_trunc('month', date) AS month, SUM(amount) AS total
		FROM expenses
		GROUP BY date_trunc('month', date)
		ORDER BY month DESC
		LIMIT $1
	) recent
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyTotalResult
	for rows.Next() {
		var row repository.MonthlyTotalResult
		if err := rows.Scan(&row.Month, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountLowStockComponents cuenta los componentes estrictamente bajo su umbral.
func (r *AnalyticsRepo) CountLowStockComponents(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM components WHERE current_stock < safety_stock_threshold`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStockComponents: %w", err)
	}
	return count, nil
}

// GetRecentExpenses devuelve los últimos gastos registrados con el nombre del
// proveedor embebido, para el widget de actividad.
func (r *AnalyticsRepo) GetRecentExpenses(ctx context.Context, limit int) ([]*entity.Expense, error) {
	const query = `
	SELECT e.id, e.date, e.description, e.amount, e.category, COALESCE(e.vendor_id::text, ''),
	       e.is_recurring, e.receipt_url, e.created_at,
	       v.id, v.name, v.default_category, v.website_url
	FROM expenses e
	LEFT JOIN vendors v ON v.id = e.vendor_id
	ORDER BY e.created_at DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRecentExpenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// GetProductsInStock devuelve los productos con stock positivo, mayor stock
// primero, para el widget de actividad.
func (r *AnalyticsRepo) GetProductsInStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	const query = `
	SELECT id, name, sku, current_stock, sale_price, sop_markdown, created_at, updated_at
	FROM products
	WHERE current_stock > 0
	ORDER BY current_stock DESC, name
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductsInStock: %w", err)
	}
	defer rows.Close()

	var results []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.CurrentStock, &p.SalePrice,
			&p.SOPMarkdown, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetProductsInStock scan: %w", err)
		}
		results = append(results, &p)
	}
	return results, rows.Err()
}
