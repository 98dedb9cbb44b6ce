package catalog

import "context"

// Store abstracts product persistence so the service can run against
// Postgres or the in-memory backend.
type Store interface {
	// CountProducts returns the post-filter match count; paging fields of q
	// are ignored.
	CountProducts(ctx context.Context, q ListQuery) (int, error)
	// ListProducts returns one page of matches. q must be normalized by the
	// service (see ListQuery).
	ListProducts(ctx context.Context, q ListQuery, offset int) ([]Product, error)
	// AllProducts returns the full catalog ordered by name,
	// case-insensitively.
	AllProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, p Product) error
}
