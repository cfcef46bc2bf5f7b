package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, date, description, amount, category, vendor_id, is_recurring, receipt_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Date, e.Description, e.Amount, e.Category, e.VendorID,
		e.IsRecurring, e.ReceiptURL, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID, con el proveedor embebido si lo tiene.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := expenseSelect + ` WHERE e.id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	defer rows.Close()
	results, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// List lista gastos paginados, más reciente primero.
func (r *ExpenseRepo) List(limit, offset int) ([]*entity.Expense, error) {
	query := expenseSelect + ` ORDER BY e.date DESC, e.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ListByDateRange lista los gastos con e.date en [start, end), ascendente.
func (r *ExpenseRepo) ListByDateRange(start, end time.Time) ([]*entity.Expense, error) {
	query := expenseSelect + ` WHERE e.date >= $1 AND e.date < $2 ORDER BY e.date, e.created_at`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list expenses by range: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// Update actualiza un gasto existente.
func (r *ExpenseRepo) Update(e *entity.Expense) error {
	query := `
		UPDATE expenses SET date = $2, description = $3, amount = $4, category = $5,
			vendor_id = NULLIF($6, '')::uuid, is_recurring = $7, receipt_url = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Date, e.Description, e.Amount, e.Category, e.VendorID,
		e.IsRecurring, e.ReceiptURL,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

const expenseSelect = `
	SELECT e.id, e.date, e.description, e.amount, e.category, COALESCE(e.vendor_id::text, ''),
	       e.is_recurring, e.receipt_url, e.created_at,
	       v.id, v.name, v.default_category, v.website_url
	FROM expenses e
	LEFT JOIN vendors v ON v.id = e.vendor_id`

func scanExpenses(rows pgx.Rows) ([]*entity.Expense, error) {
	var results []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		var (
			vID, vName, vCategory, vWebsite *string
		)
		if err := rows.Scan(
			&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category, &e.VendorID,
			&e.IsRecurring, &e.ReceiptURL, &e.CreatedAt,
			&vID, &vName, &vCategory, &vWebsite,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if vID != nil {
			v := &entity.Vendor{ID: *vID}
			if vName != nil {
				v.Name = *vName
			}
			if vCategory != nil {
				v.DefaultCategory = *vCategory
			}
			if vWebsite != nil {
				v.WebsiteURL = *vWebsite
			}
			e.Vendor = v
		}
		results = append(results, &e)
	}
	return results, rows.Err()
}
