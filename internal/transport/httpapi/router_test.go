package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/health"
	"github.com/vladislavdragonenkov/ordenes/internal/service/orders"
	"github.com/vladislavdragonenkov/ordenes/internal/service/products"
	"github.com/vladislavdragonenkov/ordenes/internal/storage/memory"
	"github.com/vladislavdragonenkov/ordenes/internal/transport/httpapi"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	entry := logger.WithField("component", "test")

	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	orderRepo := memory.NewOrderRepository(store)

	healthHandler := health.NewHandler("test")
	healthHandler.RegisterChecker("storage", health.NewSimpleChecker("storage", func() error {
		return nil
	}))

	return httpapi.NewRouter(httpapi.RouterConfig{
		Orders:   orders.NewService(orderRepo, productRepo, entry),
		Products: products.NewService(productRepo, entry),
		Health:   healthHandler,
		Logger:   entry,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, router http.Handler, name, price string) products.Response {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name":  name,
		"price": price,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp products.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	return resp
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	created := createProduct(t, router, "Teclado", "49.90")
	if created.ID == 0 {
		t.Fatal("expected non-zero product id")
	}

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var fetched products.Response
	if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if fetched.Name != "Teclado" {
		t.Errorf("expected name Teclado, got %s", fetched.Name)
	}
	if !fetched.Price.Equal(decimal.RequireFromString("49.90")) {
		t.Errorf("expected price 49.90, got %s", fetched.Price)
	}

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), map[string]any{
		"id":    created.ID,
		"name":  "Teclado Pro",
		"price": "59.90",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateProduct_LocationHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name":  "Mouse",
		"price": "25",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	if location := w.Header().Get("Location"); location == "" {
		t.Error("expected Location header on create")
	}
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "blank name", body: map[string]any{"name": " ", "price": "10"}},
		{name: "zero price", body: map[string]any{"name": "Mouse", "price": "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/products", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestUpdateProduct_IDMismatch(t *testing.T) {
	router := newTestRouter(t)

	created := createProduct(t, router, "Monitor", "300")

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), map[string]any{
		"id":    created.ID + 1,
		"name":  "Monitor",
		"price": "300",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestInvalidIDInPath(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/products/abc", "/api/products/0", "/api/orders/abc"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)

	a := createProduct(t, router, "A", "400")
	b := createProduct(t, router, "B", "200")

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer":    "Maria",
		"product_ids": []int64{a.ID, b.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created orders.Response
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	// 600 с 10% скидкой.
	if !created.Total.Equal(decimal.NewFromInt(540)) {
		t.Errorf("expected total 540, got %s", created.Total)
	}
	if len(created.Products) != 2 {
		t.Errorf("expected 2 product snapshots, got %d", len(created.Products))
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/orders/%d", created.ID), map[string]any{
		"customer":    "Maria Lopez",
		"product_ids": []int64{a.ID},
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("update order: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	var updated orders.Response
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if updated.Customer != "Maria Lopez" {
		t.Errorf("expected updated customer, got %s", updated.Customer)
	}
	if len(updated.Products) != 1 {
		t.Errorf("expected 1 product after update, got %d", len(updated.Products))
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete order: expected 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateOrder_Errors(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "A", "10")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "blank customer",
			body: map[string]any{"customer": " ", "product_ids": []int64{product.ID}},
			want: http.StatusBadRequest,
		},
		{
			name: "empty products",
			body: map[string]any{"customer": "Maria", "product_ids": []int64{}},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown product",
			body: map[string]any{"customer": "Maria", "product_ids": []int64{9999}},
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/orders", tc.body)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestListOrders_Pagination(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "A", "10")
	for i := 0; i < 7; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
			"customer":    "Cliente",
			"product_ids": []int64{product.ID},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create order %d: got %d", i, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/orders?page=2&page_size=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page orders.PageResponse
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}

	if page.Page != 2 || page.PageSize != 3 {
		t.Errorf("expected page 2 size 3, got page %d size %d", page.Page, page.PageSize)
	}
	if page.TotalItems != 7 || page.TotalPages != 3 {
		t.Errorf("expected 7 items over 3 pages, got %d over %d", page.TotalItems, page.TotalPages)
	}
	if len(page.Items) != 3 {
		t.Errorf("expected 3 items on page, got %d", len(page.Items))
	}
}

func TestListOrders_ClampsPageSize(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/orders?page=0&page_size=500", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page orders.PageResponse
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Page != 1 {
		t.Errorf("expected page normalized to 1, got %d", page.Page)
	}
	if page.PageSize != 50 {
		t.Errorf("expected page size clamped to 50, got %d", page.PageSize)
	}
}

func TestDeleteProductInUse(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Disco", "80")

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer":    "Maria",
		"product_ids": []int64{product.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for in-use product, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d/in-use", product.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var inUse products.InUseResponse
	if err := json.NewDecoder(w.Body).Decode(&inUse); err != nil {
		t.Fatalf("decode in-use: %v", err)
	}
	if !inUse.InUse {
		t.Error("expected product to be reported in use")
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-Id", "client-id-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "client-id-123" {
		t.Errorf("expected client request id to be echoed, got %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}
