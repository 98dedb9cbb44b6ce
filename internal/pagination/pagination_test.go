package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"valid values pass through", 3, 10, 3, 10},
		{"zero page corrected", 0, 10, 1, 10},
		{"negative page corrected", -5, 10, 1, 10},
		{"zero limit corrected", 1, 0, 1, 1},
		{"negative limit corrected", 2, -1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := Clamp(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int
		wantOffset         int
		wantPages          int
	}{
		{"empty collection is one page", 0, 1, 10, 0, 1},
		{"partial last page counts", 25, 3, 10, 20, 3},
		{"page past the end keeps true pages", 25, 4, 10, 30, 3},
		{"exact multiple", 30, 2, 10, 10, 3},
		{"single item", 1, 1, 10, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, pages := Paginate(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}
