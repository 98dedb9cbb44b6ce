package catalog

import "fmt"

// NotFoundError reports a product id that is not in the catalog. It carries
// the id so callers can tell which cart line failed.
type NotFoundError struct {
	ProductID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}
