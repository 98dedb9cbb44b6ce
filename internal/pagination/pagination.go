package pagination

// Page is a bounded slice of an ordered collection plus paging metadata.
// Product and order listings share this envelope so both report the same
// edge-case behavior.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Clamp silently corrects invalid page/limit values instead of rejecting them.
func Clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

// Paginate computes the row offset and total page count for a collection.
// An empty collection still counts as one page so clients never see pages=0.
func Paginate(total, page, limit int) (offset, pages int) {
	pages = 1
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	offset = (page - 1) * limit
	return offset, pages
}
