package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/printflowhq/printflow-backend/internal/catalog"
	"github.com/printflowhq/printflow-backend/internal/costs"
	"github.com/printflowhq/printflow-backend/internal/dashboard"
	"github.com/printflowhq/printflow-backend/internal/directory"
	"github.com/printflowhq/printflow-backend/internal/orders"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/internal/stock"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
	"github.com/printflowhq/printflow-backend/pkg/types"
)

type fakeCatalog struct {
	created  []catalog.CreateProductInput
	archived []string
	err      error
}

func (f *fakeCatalog) CreateProduct(_ context.Context, input catalog.CreateProductInput) (*records.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	return &records.Product{ID: "prod-1", Name: input.Name}, nil
}

func (f *fakeCatalog) ArchiveProduct(_ context.Context, productID string) error {
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, productID)
	return nil
}

func (f *fakeCatalog) Products(context.Context) ([]records.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []records.Product{{ID: "prod-1", Name: "Benchy"}}, nil
}

func (f *fakeCatalog) EnsureCategory(context.Context, string) (string, error) {
	return "cat-1", nil
}

type fakeOrders struct {
	inputs []orders.CreateInput
	err    error
}

func (f *fakeOrders) Create(_ context.Context, input orders.CreateInput) (*orders.CreateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &orders.CreateResult{OrderID: "order-1", Total: 42.5}, nil
}

func (f *fakeOrders) List(context.Context) ([]records.Order, error) {
	return []records.Order{{ID: "order-1", Title: "ORD-1"}}, nil
}

type fakeStock struct {
	adjusted []stock.AdjustInput
	err      error
}

func (f *fakeStock) Adjust(_ context.Context, input stock.AdjustInput) error {
	if f.err != nil {
		return f.err
	}
	f.adjusted = append(f.adjusted, input)
	return nil
}

func (f *fakeStock) Balances(context.Context) ([]records.Stock, error) {
	return []records.Stock{{ID: "stock-1", CurrentQty: 3}}, nil
}

func (f *fakeStock) Movements(context.Context) ([]records.StockMovement, error) {
	return []records.StockMovement{{ID: "mv-1", Quantity: 2}}, nil
}

type fakeDirectory struct{}

func (fakeDirectory) EnsureCustomer(context.Context, directory.EnsureCustomerInput) (string, error) {
	return "cust-1", nil
}

func (fakeDirectory) EnsureStore(context.Context, directory.EnsureStoreInput) (string, error) {
	return "store-1", nil
}

func (fakeDirectory) EnsureSupplier(context.Context, directory.EnsureSupplierInput) (string, error) {
	return "sup-1", nil
}

func (fakeDirectory) Customers(context.Context) ([]records.Customer, error) {
	return []records.Customer{{ID: "cust-1", Name: "Alice"}}, nil
}

func (fakeDirectory) Stores(context.Context) ([]records.StoreFront, error) {
	return []records.StoreFront{{ID: "store-1", Name: "Etsy"}}, nil
}

func (fakeDirectory) Suppliers(context.Context) ([]records.Supplier, error) {
	return []records.Supplier{{ID: "sup-1", Name: "Filament Co"}}, nil
}

type fakeCosts struct{}

func (fakeCosts) Record(_ context.Context, input costs.RecordInput) (*records.Cost, error) {
	return &records.Cost{ID: "cost-1", Value: input.Value}, nil
}

func (fakeCosts) List(context.Context) ([]records.Cost, error) {
	return []records.Cost{{ID: "cost-1", Value: 10}}, nil
}

type fakeDashboard struct {
	summary dashboard.Summary
}

func (f *fakeDashboard) Summary(context.Context) (*dashboard.Summary, error) {
	return &f.summary, nil
}

func newTestRouter(t *testing.T, params RouterParams) http.Handler {
	t.Helper()
	if params.Logger == nil {
		params.Logger = logger.New(logger.Options{
			ServiceName: "test",
			Level:       zerolog.Disabled,
		})
	}
	return NewRouter(params)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	rec := doJSON(t, router, http.MethodGet, "/health/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestCreateProduct(t *testing.T) {
	cat := &fakeCatalog{}
	router := newTestRouter(t, RouterParams{
		Catalog:   cat,
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products",
		`{"name":"Benchy","sale_price":25.5,"sku":"3DP-001","category":"Calibration"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(cat.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(cat.created))
	}
	if cat.created[0].SalePrice != 25.5 {
		t.Fatalf("unexpected sale price %v", cat.created[0].SalePrice)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data == nil {
		t.Fatal("expected data in envelope")
	}
}

func TestCreateProductValidation(t *testing.T) {
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products", `{"sale_price":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestArchiveProduct(t *testing.T) {
	cat := &fakeCatalog{}
	router := newTestRouter(t, RouterParams{
		Catalog:   cat,
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products/prod-9/archive", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(cat.archived) != 1 || cat.archived[0] != "prod-9" {
		t.Fatalf("unexpected archive calls %v", cat.archived)
	}
}

func TestCreateOrder(t *testing.T) {
	ord := &fakeOrders{}
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    ord,
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	body := `{
		"title": "ORD-7",
		"date": "2024-03-01",
		"store_id": "store-1",
		"customer_id": "cust-1",
		"payment_method": "PIX",
		"status": "Paid",
		"items": [
			{"product_id": "prod-1", "quantity": 2, "unit_price": 10}
		]
	}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(ord.inputs) != 1 {
		t.Fatalf("expected one create call, got %d", len(ord.inputs))
	}
	if len(ord.inputs[0].Items) != 1 || ord.inputs[0].Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %v", ord.inputs[0].Items)
	}
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	body := `{
		"title": "ORD-8",
		"date": "2024-03-01",
		"payment_method": "Barter",
		"status": "Paid",
		"items": [{"product_id": "prod-1", "quantity": 1, "unit_price": 5}]
	}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdjustStock(t *testing.T) {
	st := &fakeStock{}
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     st,
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	body := `{"product_id":"prod-1","quantity_delta":-3,"date":"2024-03-01","movement_type":"Out","notes":"damage"}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/stock/adjust", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(st.adjusted) != 1 {
		t.Fatalf("expected one adjust call, got %d", len(st.adjusted))
	}
	if st.adjusted[0].QuantityDelta != -3 {
		t.Fatalf("unexpected delta %v", st.adjusted[0].QuantityDelta)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	st := &fakeStock{err: pkgerrors.New(pkgerrors.CodeNotFound, "stock balance not found")}
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     st,
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	body := `{"product_id":"prod-1","quantity_delta":1,"date":"2024-03-01","movement_type":"In"}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/stock/adjust", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Message != "stock balance not found" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestDashboardSummary(t *testing.T) {
	dash := &fakeDashboard{summary: dashboard.Summary{Orders: 2, Revenue: 55.5, ItemsSold: 5, LowStock: 1}}
	router := newTestRouter(t, RouterParams{
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     &fakeStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: dash,
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data dashboard.Summary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.Revenue != 55.5 {
		t.Fatalf("unexpected revenue %v", envelope.Data.Revenue)
	}
}

func TestPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: &buf})

	router := NewRouter(RouterParams{
		Logger:    logg,
		Catalog:   &fakeCatalog{},
		Orders:    &fakeOrders{},
		Stock:     panickingStock{},
		Directory: fakeDirectory{},
		Costs:     fakeCosts{},
		Dashboard: &fakeDashboard{},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stock", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "request.error") {
		t.Fatalf("expected an error log entry, got %q", buf.String())
	}
}

type panickingStock struct{}

func (panickingStock) Adjust(context.Context, stock.AdjustInput) error { panic("boom") }
func (panickingStock) Balances(context.Context) ([]records.Stock, error) {
	panic("boom")
}
func (panickingStock) Movements(context.Context) ([]records.StockMovement, error) {
	panic("boom")
}
