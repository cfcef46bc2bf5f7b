package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/misulabs/misu-erp/internal/domain"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

var _ repository.RecurringRuleRepository = (*RecurringRuleRepo)(nil)

// RecurringRuleRepo implementación del puerto RecurringRuleRepository sobre PostgreSQL.
type RecurringRuleRepo struct {
	q Querier
}

// NewRecurringRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecurringRuleRepository(q Querier) *RecurringRuleRepo {
	return &RecurringRuleRepo{q: q}
}

// Create persiste un nuevo cargo recurrente.
func (r *RecurringRuleRepo) Create(rule *entity.RecurringRule) error {
	query := `
		INSERT INTO recurring_rules (id, vendor_id, amount, frequency, next_due_date, active)
		VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.VendorID, rule.Amount, rule.Frequency, rule.NextDueDate, rule.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recurring rule: %w", err)
	}
	return nil
}

// GetByID obtiene un cargo recurrente por ID, con el proveedor embebido.
func (r *RecurringRuleRepo) GetByID(id string) (*entity.RecurringRule, error) {
	rows, err := r.q.Query(context.Background(), recurringSelect+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get recurring rule: %w", err)
	}
	defer rows.Close()
	results, err := scanRecurringRules(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// List lista los cargos recurrentes, próxima fecha de cobro primero
// (las reglas sin fecha van al final).
func (r *RecurringRuleRepo) List() ([]*entity.RecurringRule, error) {
	rows, err := r.q.Query(context.Background(),
		recurringSelect+` ORDER BY r.next_due_date NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	defer rows.Close()
	return scanRecurringRules(rows)
}

// Update actualiza un cargo recurrente existente.
func (r *RecurringRuleRepo) Update(rule *entity.RecurringRule) error {
	query := `
		UPDATE recurring_rules SET vendor_id = NULLIF($2, '')::uuid, amount = $3,
			frequency = NULLIF($4, ''), next_due_date = $5, active = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.VendorID, rule.Amount, rule.Frequency, rule.NextDueDate, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("update recurring rule: %w", err)
	}
	return nil
}

// Delete elimina un cargo recurrente.
func (r *RecurringRuleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recurring_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recurring rule: %w", err)
	}
	return nil
}

const recurringSelect = `
	SELECT r.id, COALESCE(r.vendor_id::text, ''), r.amount, COALESCE(r.frequency, ''),
	       r.next_due_date, r.active,
	       v.id, v.name, v.default_category, v.website_url
	FROM recurring_rules r
	LEFT JOIN vendors v ON v.id = r.vendor_id`

func scanRecurringRules(rows pgx.Rows) ([]*entity.RecurringRule, error) {
	var results []*entity.RecurringRule
	for rows.Next() {
		var rule entity.RecurringRule
		var vID, vName, vCategory, vWebsite *string
		if err := rows.Scan(
			&rule.ID, &rule.VendorID, &rule.Amount, &rule.Frequency,
			&rule.NextDueDate, &rule.Active,
			&vID, &vName, &vCategory, &vWebsite,
		); err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
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
			rule.Vendor = v
		}
		results = append(results, &rule)
	}
	return results, rows.Err()
}
