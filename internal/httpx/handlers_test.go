package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/catalog"
	"shopapi/internal/httpx"
	"shopapi/internal/memstore"
	"shopapi/internal/orders"
	"shopapi/internal/pagination"
)

func newTestServer(t *testing.T) (*chi.Mux, *catalog.Service, *orders.Service) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memstore.New()
	catSvc := catalog.NewService(store, log)
	require.NoError(t, catalog.Seed(context.Background(), catSvc))
	ordSvc := orders.NewService(store, nil, "shop-api-test", log)

	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Catalog: catSvc, Log: log}).Register(router)
	(&httpx.OrdersHandler{Orders: ordSvc, Log: log}).Register(router)
	return router, catSvc, ordSvc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func firstProductID(t *testing.T, svc *catalog.Service) string {
	t.Helper()
	all, err := svc.All(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, all)
	return all[0].ID
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestServer(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products?search=watch&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeBody[pagination.Page[catalog.Product]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Smart Watch", page.Items[0].Name)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Pages)
}

func TestListProductsPaginated(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products/paginated?page=2&limit=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeBody[pagination.Page[catalog.Product]](t, rec)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.Pages)
}

func TestGetProduct(t *testing.T) {
	router, catSvc, _ := newTestServer(t)
	id := firstProductID(t, catSvc)

	rec := doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[catalog.Product](t, rec)
	assert.Equal(t, id, p.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/products", catalog.CreateInput{
		Name:        "Desk Lamp",
		Description: "Adjustable LED desk lamp",
		Price:       24.50,
		Stock:       15,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decodeBody[catalog.Product](t, rec)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Desk Lamp", p.Name)

	rec = doJSON(t, router, http.MethodPost, "/api/products", map[string]any{"price": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	router, catSvc, _ := newTestServer(t)
	id := firstProductID(t, catSvc)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"cart_items": []orders.CartItem{{ProductID: id, Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	order := decodeBody[orders.Order](t, rec)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, orders.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock went down by the ordered quantity (Laptop Backpack seeds at 100).
	p, err := catSvc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 98, p.Stock)
}

func TestCreateOrderFailures(t *testing.T) {
	router, catSvc, _ := newTestServer(t)
	id := firstProductID(t, catSvc)

	// Empty cart.
	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{"cart_items": []orders.CartItem{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown product.
	rec = doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"cart_items": []orders.CartItem{{ProductID: "no-such-id", Quantity: 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["error"], "no-such-id")

	// More than available stock.
	rec = doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"cart_items": []orders.CartItem{{ProductID: id, Quantity: 10000}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed JSON.
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder(t *testing.T) {
	router, catSvc, ordSvc := newTestServer(t)
	id := firstProductID(t, catSvc)

	created, err := ordSvc.Create(context.Background(), []orders.CartItem{{ProductID: id, Quantity: 1}})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[orders.Order](t, rec)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Items, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersPaginated(t *testing.T) {
	router, catSvc, ordSvc := newTestServer(t)
	id := firstProductID(t, catSvc)

	for i := 0; i < 3; i++ {
		_, err := ordSvc.Create(context.Background(), []orders.CartItem{{ProductID: id, Quantity: 1}})
		require.NoError(t, err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/orders/paginated?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[pagination.Page[orders.Order]](t, rec)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)

	rec = doJSON(t, router, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]orders.Order](t, rec)
	assert.Len(t, all, 3)
}
