package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appassembly "github.com/misulabs/misu-erp/internal/application/assembly"
	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/application/usecase"
	domassembly "github.com/misulabs/misu-erp/internal/domain/assembly"
	"github.com/misulabs/misu-erp/internal/domain/entity"
	"github.com/misulabs/misu-erp/internal/domain/repository"
	apphttp "github.com/misulabs/misu-erp/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar la API de componentes y ensamblaje end-to-end.
// ──────────────────────────────────────────────────────────────────────────────

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

type memStore struct {
	components map[string]*entity.Component
	products   map[string]*entity.Product
	bom        map[string][]*entity.BOMLine
}

type componentRepo struct{ s *memStore }

func (r *componentRepo) Create(c *entity.Component) error {
	cp := *c
	r.s.components[c.ID] = &cp
	return nil
}

func (r *componentRepo) GetByID(id string) (*entity.Component, error) {
	c, ok := r.s.components[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *componentRepo) List() ([]*entity.Component, error) {
	out := make([]*entity.Component, 0, len(r.s.components))
	for _, c := range r.s.components {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *componentRepo) ListLowStock() ([]*entity.Component, error) {
	var out []*entity.Component
	for _, c := range r.s.components {
		if c.IsLowStock() {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *componentRepo) Update(c *entity.Component) error {
	cp := *c
	r.s.components[c.ID] = &cp
	return nil
}

func (r *componentRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	r.s.components[id].CurrentStock = newStock
	return nil
}

func (r *componentRepo) GetForUpdate(id string) (*entity.Component, error) {
	return r.GetByID(id)
}

func (r *componentRepo) ConsumeStock(id string, amount decimal.Decimal) (bool, error) {
	c := r.s.components[id]
	if c.CurrentStock.LessThan(amount) {
		return false, nil
	}
	c.CurrentStock = c.CurrentStock.Sub(amount)
	return true, nil
}

func (r *componentRepo) Delete(id string) error {
	delete(r.s.components, id)
	return nil
}

type productRepo struct{ s *memStore }

func (r *productRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) List() ([]*entity.Product, error) { return nil, nil }

func (r *productRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) UpdateStock(id string, newStock int64) error {
	r.s.products[id].CurrentStock = newStock
	return nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type bomRepo struct{ s *memStore }

func (r *bomRepo) ListByProduct(productID string) ([]*entity.BOMLine, error) {
	var out []*entity.BOMLine
	for _, l := range r.s.bom[productID] {
		cp := *l
		if c, ok := r.s.components[l.ComponentID]; ok {
			ccp := *c
			cp.Component = &ccp
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (r *bomRepo) UpsertLine(*entity.BOMLine) error { return nil }
func (r *bomRepo) DeleteLine(string) error          { return nil }

type txRunner struct{ s *memStore }

func (t *txRunner) Run(_ context.Context, fn func(
	bom repository.BOMRepository,
	components repository.ComponentRepository,
	products repository.ProductRepository,
) error) error {
	return fn(&bomRepo{t.s}, &componentRepo{t.s}, &productRepo{t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Montaje de la app
// ──────────────────────────────────────────────────────────────────────────────

func newTestApp() (*fiber.App, *memStore) {
	s := &memStore{
		components: map[string]*entity.Component{
			"c1": {ID: "c1", Name: "Cera", CurrentStock: dec(100), SafetyStockThreshold: dec(20)},
		},
		products: map[string]*entity.Product{
			"p1": {ID: "p1", Name: "Vela", CurrentStock: 2},
		},
		bom: map[string][]*entity.BOMLine{
			"p1": {
				{ID: "b1", ProductID: "p1", ComponentID: "c1", QuantityRequired: decPtr(10)},
			},
		},
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ComponentUC: usecase.NewComponentUseCase(&componentRepo{s}),
		ProductUC:   usecase.NewProductUseCase(&productRepo{s}, &bomRepo{s}, &componentRepo{s}),
		AssemblyUC:  appassembly.NewUseCase(&txRunner{s}, &productRepo{s}, &bomRepo{s}, domassembly.Options{}),
	})
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Componentes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ComponentCreate(t *testing.T) {
	app, s := newTestApp()

	resp := doJSON(t, app, "POST", "/api/components", dto.CreateComponentRequest{
		Name:         "Mecha",
		CurrentStock: dec(30),
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decodeBody[dto.ComponentResponse](t, resp)
	assert.Equal(t, "Mecha", out.Name)
	assert.Len(t, s.components, 2)
}

func TestAPI_ComponentNotFound(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, "GET", "/api/components/c-zzz", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	out := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestAPI_AdjustStock(t *testing.T) {
	app, s := newTestApp()

	resp := doJSON(t, app, "POST", "/api/components/c1/adjust-stock", dto.AdjustStockRequest{
		Quantity:  dec(500),
		Operation: entity.StockOpSubtract,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.ComponentResponse](t, resp)
	assert.True(t, out.CurrentStock.Equal(decimal.Zero), "el sobregiro se acota en cero")
	assert.True(t, s.components["c1"].CurrentStock.Equal(decimal.Zero))

	resp = doJSON(t, app, "POST", "/api/components/c1/adjust-stock", dto.AdjustStockRequest{
		Quantity:  dec(5),
		Operation: "multiply",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody[dto.ErrorResponse](t, resp).Code)
}

// /low-stock es un segmento estático: no debe capturarlo la ruta /:id.
func TestAPI_LowStockRoute(t *testing.T) {
	app, s := newTestApp()
	s.components["c2"] = &entity.Component{
		ID: "c2", Name: "Frasco", CurrentStock: dec(1), SafetyStockThreshold: dec(50),
	}

	resp := doJSON(t, app, "GET", "/api/components/low-stock", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[[]dto.LowStockComponentDTO](t, resp)
	require.Len(t, out, 1)
	assert.Equal(t, "Frasco", out[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ensamblaje
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Assemble(t *testing.T) {
	app, s := newTestApp()

	resp := doJSON(t, app, "POST", "/api/products/p1/assemble", dto.AssembleRequest{Quantity: 3})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.AssembleResponse](t, resp)
	assert.Equal(t, int64(5), out.NewProductStock, "2 en stock + 3 ensambladas")
	require.Len(t, out.Consumed, 1)
	assert.True(t, out.Consumed[0].Consumed.Equal(dec(30)))
	assert.True(t, s.components["c1"].CurrentStock.Equal(dec(70)))
}

func TestAPI_Assemble_StockInsuficiente(t *testing.T) {
	app, _ := newTestApp()

	// max buildable = floor(100/10) = 10
	resp := doJSON(t, app, "POST", "/api/products/p1/assemble", dto.AssembleRequest{Quantity: 11})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_Assemble_SinBOM(t *testing.T) {
	app, s := newTestApp()
	s.products["p2"] = &entity.Product{ID: "p2", Name: "Sin receta"}

	resp := doJSON(t, app, "POST", "/api/products/p2/assemble", dto.AssembleRequest{Quantity: 1})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NO_BOM_DEFINED", decodeBody[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_MaxBuildable(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, "GET", "/api/products/p1/max-buildable", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.MaxBuildableResponse](t, resp)
	assert.Equal(t, int64(10), out.MaxBuildable)
}
