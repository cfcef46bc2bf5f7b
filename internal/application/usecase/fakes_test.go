package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Copian las entidades al
// leer y escribir para que los tests no compartan punteros con el store.
// ──────────────────────────────────────────────────────────────────────────────

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func strPtr(s string) *string { return &s }

// ── Componentes ───────────────────────────────────────────────────────────────

type memComponentRepo struct {
	items map[string]*entity.Component
	err   error // fuerza fallo de storage en toda operación
}

func newMemComponentRepo() *memComponentRepo {
	return &memComponentRepo{items: map[string]*entity.Component{}}
}

func (r *memComponentRepo) Create(c *entity.Component) error {
	if r.err != nil {
		return r.err
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memComponentRepo) GetByID(id string) (*entity.Component, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memComponentRepo) List() ([]*entity.Component, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entity.Component, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memComponentRepo) ListLowStock() ([]*entity.Component, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Component
	for _, c := range r.items {
		if c.IsLowStock() {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memComponentRepo) Update(c *entity.Component) error {
	if r.err != nil {
		return r.err
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memComponentRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	if r.err != nil {
		return r.err
	}
	r.items[id].CurrentStock = newStock
	return nil
}

func (r *memComponentRepo) GetForUpdate(id string) (*entity.Component, error) {
	return r.GetByID(id)
}

func (r *memComponentRepo) ConsumeStock(id string, amount decimal.Decimal) (bool, error) {
	c, ok := r.items[id]
	if !ok || c.CurrentStock.LessThan(amount) {
		return false, nil
	}
	c.CurrentStock = c.CurrentStock.Sub(amount)
	return true, nil
}

func (r *memComponentRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

type memProductRepo struct {
	items map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, newStock int64) error {
	r.items[id].CurrentStock = newStock
	return nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── BOM ───────────────────────────────────────────────────────────────────────

type memBOMRepo struct {
	components *memComponentRepo
	lines      map[string]*entity.BOMLine // por ID de línea
}

func newMemBOMRepo(components *memComponentRepo) *memBOMRepo {
	return &memBOMRepo{components: components, lines: map[string]*entity.BOMLine{}}
}

func (r *memBOMRepo) ListByProduct(productID string) ([]*entity.BOMLine, error) {
	var out []*entity.BOMLine
	for _, l := range r.lines {
		if l.ProductID != productID {
			continue
		}
		cp := *l
		if l.ComponentID != "" {
			if c, ok := r.components.items[l.ComponentID]; ok {
				ccp := *c
				cp.Component = &ccp
			}
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertLine replica el ON CONFLICT (product_id, component_id) de la tabla.
func (r *memBOMRepo) UpsertLine(line *entity.BOMLine) error {
	for _, l := range r.lines {
		if l.ProductID == line.ProductID && l.ComponentID == line.ComponentID {
			l.QuantityRequired = line.QuantityRequired
			return nil
		}
	}
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *memBOMRepo) DeleteLine(id string) error {
	delete(r.lines, id)
	return nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type memVendorRepo struct {
	items map[string]*entity.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{items: map[string]*entity.Vendor{}}
}

func (r *memVendorRepo) Create(v *entity.Vendor) error {
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVendorRepo) List() ([]*entity.Vendor, error) {
	out := make([]*entity.Vendor, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memVendorRepo) Update(v *entity.Vendor) error {
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── Gastos ────────────────────────────────────────────────────────────────────

type memExpenseRepo struct {
	vendors *memVendorRepo
	items   map[string]*entity.Expense
}

func newMemExpenseRepo(vendors *memVendorRepo) *memExpenseRepo {
	return &memExpenseRepo{vendors: vendors, items: map[string]*entity.Expense{}}
}

func (r *memExpenseRepo) withVendor(e *entity.Expense) *entity.Expense {
	cp := *e
	if cp.VendorID != "" && r.vendors != nil {
		if v, ok := r.vendors.items[cp.VendorID]; ok {
			vcp := *v
			cp.Vendor = &vcp
		}
	}
	return &cp
}

func (r *memExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *memExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return r.withVendor(e), nil
}

func (r *memExpenseRepo) sorted() []*entity.Expense {
	out := make([]*entity.Expense, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, r.withVendor(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memExpenseRepo) List(limit, offset int) ([]*entity.Expense, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memExpenseRepo) ListByDateRange(start, end time.Time) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.sorted() {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Update(e *entity.Expense) error {
	cp := *e
	cp.Vendor = nil
	r.items[e.ID] = &cp
	return nil
}

func (r *memExpenseRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── Cargos recurrentes ────────────────────────────────────────────────────────

type memRecurringRepo struct {
	items map[string]*entity.RecurringRule
}

func newMemRecurringRepo() *memRecurringRepo {
	return &memRecurringRepo{items: map[string]*entity.RecurringRule{}}
}

func (r *memRecurringRepo) Create(rule *entity.RecurringRule) error {
	cp := *rule
	r.items[rule.ID] = &cp
	return nil
}

func (r *memRecurringRepo) GetByID(id string) (*entity.RecurringRule, error) {
	rule, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (r *memRecurringRepo) List() ([]*entity.RecurringRule, error) {
	out := make([]*entity.RecurringRule, 0, len(r.items))
	for _, rule := range r.items {
		cp := *rule
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].NextDueDate, out[j].NextDueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (r *memRecurringRepo) Update(rule *entity.RecurringRule) error {
	cp := *rule
	r.items[rule.ID] = &cp
	return nil
}

func (r *memRecurringRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── Métricas mensuales ────────────────────────────────────────────────────────

type memMetricRepo struct {
	items map[string]*entity.MonthlyMetric
}

func newMemMetricRepo() *memMetricRepo {
	return &memMetricRepo{items: map[string]*entity.MonthlyMetric{}}
}

func (r *memMetricRepo) Create(m *entity.MonthlyMetric) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *memMetricRepo) GetByID(id string) (*entity.MonthlyMetric, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMetricRepo) List() ([]*entity.MonthlyMetric, error) {
	out := make([]*entity.MonthlyMetric, 0, len(r.items))
	for _, m := range r.items {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

func (r *memMetricRepo) Update(m *entity.MonthlyMetric) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *memMetricRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ── Analítica (solo lo que usa MarketingSpend) ────────────────────────────────

type stubAnalyticsRepo struct {
	total decimal.Decimal
	err   error

	gotStart    time.Time
	gotEnd      time.Time
	gotCategory string
}

func (r *stubAnalyticsRepo) GetExpenseTotal(_ context.Context, start, end time.Time, category string) (decimal.Decimal, error) {
	r.gotStart, r.gotEnd, r.gotCategory = start, end, category
	return r.total, r.err
}

func (r *stubAnalyticsRepo) GetCategoryTotals(context.Context, time.Time, time.Time) ([]repository.CategoryTotalResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetVendorTotals(context.Context, time.Time, time.Time) ([]repository.VendorTotalResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetMonthlyTotals(context.Context, int) ([]repository.MonthlyTotalResult, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) CountLowStockComponents(context.Context) (int, error) {
	return 0, nil
}

func (r *stubAnalyticsRepo) GetRecentExpenses(context.Context, int) ([]*entity.Expense, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetProductsInStock(context.Context, int) ([]*entity.Product, error) {
	return nil, nil
}
