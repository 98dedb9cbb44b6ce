package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopapi/internal/catalog"
	"shopapi/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP statuses: caller-input problems are
// 400/404, everything else is an infrastructure fault.
func statusFor(err error) int {
	var notFound catalog.NotFoundError
	var stock orders.InsufficientStockError
	switch {
	case errors.Is(err, orders.ErrOrderNotFound), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrInvalidQuantity),
		errors.As(err, &stock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Query parameter helpers. Invalid numeric input is silently corrected to
// the default rather than rejected.

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatParam(r *http.Request, name string) *float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
