package catalog

import (
	"context"
	"net/url"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/store"
)

// Service composes the query builder, the store and the similar-products
// resolver into the two catalog operations.
type Service struct {
	store store.ProductStore
}

func NewService(st store.ProductStore) *Service {
	return &Service{store: st}
}

// ListResult is one page of catalog matches with pagination metadata.
type ListResult struct {
	Items      []model.Product
	Total      int64
	Page       int
	TotalPages int
}

// ListProducts runs the filter/sort/paginate pipeline. Zero matches is a
// successful empty result, never an error; only a store failure fails.
func (s *Service) ListProducts(ctx context.Context, params url.Values) (ListResult, error) {
	q, page, limit := BuildListQuery(params)
	items, total, err := s.store.List(ctx, q)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Detail is a product plus its related items.
type Detail struct {
	Product model.Product
	Similar []model.Product
}

// GetProductDetail fetches one product and resolves its similar items.
// A missing id surfaces store.ErrNotFound.
func (s *Service) GetProductDetail(ctx context.Context, id string) (Detail, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	similar, err := s.similarProducts(ctx, p)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Product: p, Similar: similar}, nil
}
