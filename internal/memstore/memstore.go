// Package memstore keeps the whole shop in process memory. It backs the
// STORAGE_DRIVER=memory mode and the test suite, and implements the same
// store contracts as the Postgres repos.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shopapi/internal/catalog"
	"shopapi/internal/orders"
)

type Store struct {
	mu         sync.Mutex
	products   map[string]catalog.Product
	productIDs []string // insertion order
	orders     []orders.Order
}

func New() *Store {
	return &Store{products: make(map[string]catalog.Product)}
}

// ---- catalog.Store ----

func (s *Store) CountProducts(ctx context.Context, q catalog.ListQuery) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filtered(q)), nil
}

func (s *Store) ListProducts(ctx context.Context, q catalog.ListQuery, offset int) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.filtered(q)
	desc := q.SortDir == catalog.DirDesc
	sort.SliceStable(out, func(i, j int) bool {
		c := compareProducts(out[i], out[j], q.SortBy)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return slicePage(out, offset, q.Limit), nil
}

func (s *Store) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, s.products[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareName(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, catalog.NotFoundError{ProductID: id}
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		s.productIDs = append(s.productIDs, p.ID)
	}
	s.products[p.ID] = p
	return nil
}

// filtered applies search and price bounds; caller holds s.mu.
func (s *Store) filtered(q catalog.ListQuery) []catalog.Product {
	search := strings.ToLower(q.Search)
	out := make([]catalog.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		p := s.products[id]
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func compareProducts(a, b catalog.Product, field string) int {
	switch field {
	case catalog.SortPrice:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	case catalog.SortStock:
		return a.Stock - b.Stock
	default:
		return compareName(a.Name, b.Name)
	}
}

// compareName orders case-insensitively, matching the Postgres repo's
// lower(name) sort so both backends list products identically.
func compareName(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ---- orders.Store ----

// InTx serializes order creation behind the store mutex, the in-memory
// counterpart of Postgres row locks. Mutations stage on a transaction copy
// and apply only when fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(tx orders.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, staged: make(map[string]catalog.Product)}
	if err := fn(tx); err != nil {
		return err
	}
	for id, p := range tx.staged {
		s.products[id] = p
	}
	if tx.order != nil {
		s.orders = append(s.orders, *tx.order)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return orders.Order{}, orders.ErrOrderNotFound
}

func (s *Store) ListOrders(ctx context.Context) ([]orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedOrders(), nil
}

func (s *Store) CountOrders(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), nil
}

func (s *Store) ListOrdersPage(ctx context.Context, offset, limit int) ([]orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.sortedOrders(), offset, limit), nil
}

// sortedOrders returns newest first; the stable sort keeps insertion order
// for equal timestamps. Caller holds s.mu.
func (s *Store) sortedOrders() []orders.Order {
	out := make([]orders.Order, len(s.orders))
	copy(out, s.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type memTx struct {
	store  *Store
	staged map[string]catalog.Product
	order  *orders.Order
}

func (t *memTx) ProductForUpdate(ctx context.Context, id string) (catalog.Product, error) {
	if p, ok := t.staged[id]; ok {
		return p, nil
	}
	p, ok := t.store.products[id]
	if !ok {
		return catalog.Product{}, catalog.NotFoundError{ProductID: id}
	}
	return p, nil
}

func (t *memTx) DeductStock(ctx context.Context, id string, qty int) error {
	p, err := t.ProductForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if p.Stock < qty {
		return orders.InsufficientStockError{ProductID: id, Requested: qty, Available: p.Stock}
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	t.staged[id] = p
	return nil
}

func (t *memTx) InsertOrder(ctx context.Context, o orders.Order) error {
	t.order = &o
	return nil
}

func slicePage[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
