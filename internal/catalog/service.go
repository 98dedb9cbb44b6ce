package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shopapi/internal/pagination"
)

// Service implements the read and admin-create operations of the catalog.
type Service struct {
	store Store
	log   *logrus.Logger
}

func NewService(store Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// List returns one page of products matching q. Search is a case-insensitive
// substring match on name or description, price bounds are inclusive, and an
// unrecognized sort field silently falls back to name.
func (s *Service) List(ctx context.Context, q ListQuery) (pagination.Page[Product], error) {
	q.Page, q.Limit = pagination.Clamp(q.Page, q.Limit)
	q.SortBy = normalizeSortField(q.SortBy)
	q.SortDir = normalizeSortDir(q.SortDir)

	total, err := s.store.CountProducts(ctx, q)
	if err != nil {
		return pagination.Page[Product]{}, err
	}
	offset, pages := pagination.Paginate(total, q.Page, q.Limit)

	items := make([]Product, 0)
	if q.Page <= pages {
		items, err = s.store.ListProducts(ctx, q, offset)
		if err != nil {
			return pagination.Page[Product]{}, err
		}
	}
	return pagination.Page[Product]{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
		Pages: pages,
	}, nil
}

func (s *Service) All(ctx context.Context) ([]Product, error) {
	return s.store.AllProducts(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Create persists a new product under a fresh id. Names are not unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	now := time.Now().UTC()
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	s.log.Infof("product created: id=%s name=%q", p.ID, p.Name)
	return p, nil
}

func normalizeSortField(field string) string {
	switch field {
	case SortName, SortPrice, SortStock:
		return field
	default:
		return SortName
	}
}

func normalizeSortDir(dir string) string {
	if dir == DirDesc {
		return DirDesc
	}
	return DirAsc
}
