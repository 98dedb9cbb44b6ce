package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"shopapi/internal/catalog"
)

type ProductsHandler struct {
	Catalog *catalog.Service
	Log     *logrus.Logger
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Get("/api/products/paginated", h.listPaginated)
	r.Get("/api/products/all", h.all)
	r.Get("/api/products/{id}", h.get)
	r.Post("/api/products", h.create)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	page, err := h.Catalog.List(ctx, catalog.ListQuery{
		Search:   r.URL.Query().Get("search"),
		MinPrice: floatParam(r, "min_price"),
		MaxPrice: floatParam(r, "max_price"),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDir:  r.URL.Query().Get("order"),
		Page:     intParam(r, "page", 1),
		Limit:    intParam(r, "limit", 10),
	})
	if err != nil {
		h.Log.Errorf("list products: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductsHandler) listPaginated(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	page, err := h.Catalog.List(ctx, catalog.ListQuery{
		Page:  intParam(r, "page", 1),
		Limit: intParam(r, "limit", 10),
	})
	if err != nil {
		h.Log.Errorf("list products: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductsHandler) all(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		h.Log.Errorf("list all products: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	p, err := h.Catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if in.Name == "" || in.Price < 0 || in.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required, price and stock must be non-negative"})
		return
	}

	ctx, cancel := context3s(r)
	defer cancel()

	p, err := h.Catalog.Create(ctx, in)
	if err != nil {
		h.Log.Errorf("create product: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func context3s(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 3*time.Second)
}
