package catalog

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput carries the client-supplied fields of a new product; the
// service assigns id and timestamps.
type CreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

// Allowed sort fields. Anything else falls back to SortName.
const (
	SortName  = "name"
	SortPrice = "price"
	SortStock = "stock"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// ListQuery holds catalog filter, sort and paging parameters as they arrive
// from the API. The service normalizes it before it reaches a store: page and
// limit clamped, SortBy one of the allowed fields, SortDir asc or desc.
type ListQuery struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	SortDir  string
	Page     int
	Limit    int
}
