package orders

import (
	"context"

	"shopapi/internal/catalog"
)

// Tx exposes the store operations available inside one order-creation
// transaction. Stock deducted through it is visible to later reads of the
// same transaction, so a cart listing the same product twice sees its own
// earlier deduction.
type Tx interface {
	// ProductForUpdate loads a product and locks it against concurrent order
	// creation until the transaction ends. Returns catalog.NotFoundError for
	// unknown ids.
	ProductForUpdate(ctx context.Context, id string) (catalog.Product, error)
	DeductStock(ctx context.Context, id string, qty int) error
	InsertOrder(ctx context.Context, o Order) error
}

// Store abstracts order persistence. InTx runs fn inside a single
// transaction: if fn returns an error nothing it did is kept.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	// GetOrder returns the order with its items fully materialized, or
	// ErrOrderNotFound.
	GetOrder(ctx context.Context, id string) (Order, error)
	// ListOrders returns every order newest-created-first, ties broken by
	// insertion order.
	ListOrders(ctx context.Context) ([]Order, error)
	CountOrders(ctx context.Context) (int, error)
	// ListOrdersPage returns one page of orders in ListOrders order.
	ListOrdersPage(ctx context.Context, offset, limit int) ([]Order, error)
}
