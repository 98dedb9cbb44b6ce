package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shopapi/internal/orders"
	"shopapi/internal/redisx"
)

type OrdersHandler struct {
	Orders *orders.Service
	Redis  *redis.Client // optional; orders are immutable so cached bodies never go stale
	Log    *logrus.Logger
}

type createOrderRequest struct {
	CartItems []orders.CartItem `json:"cart_items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.create)
	r.Get("/api/orders", h.list)
	r.Get("/api/orders/paginated", h.listPaginated)
	r.Get("/api/orders/{id}", h.get)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.Create(ctx, req.CartItems)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Log.Errorf("create order: %v", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	out, err := h.Orders.List(ctx)
	if err != nil {
		h.Log.Errorf("list orders: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) listPaginated(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context3s(r)
	defer cancel()

	page, err := h.Orders.ListPage(ctx, intParam(r, "page", 1), intParam(r, "limit", 10))
	if err != nil {
		h.Log.Errorf("list orders page: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context3s(r)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrder, id)
	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	order, err := h.Orders.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Redis != nil {
		if body, err := json.Marshal(order); err == nil {
			_ = h.Redis.Set(ctx, key, body, redisx.TTLOrder).Err()
		}
	}
	writeJSON(w, http.StatusOK, order)
}
