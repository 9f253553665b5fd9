package catalog

import (
	"context"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/store"
)

// SimilarLimit bounds the related-item list on the detail view.
const SimilarLimit = 4

// similarProducts resolves up to SimilarLimit related items in two
// phases: same category and grade first, then same category only for any
// remaining slots. Each phase keeps the store's natural order and always
// excludes the source product. A source without category or grade yields
// an empty list without touching the store.
func (s *Service) similarProducts(ctx context.Context, p model.Product) ([]model.Product, error) {
	if p.Category == "" || p.EcoScore == "" {
		return []model.Product{}, nil
	}

	exact, _, err := s.store.List(ctx, store.Query{
		Category:   p.Category,
		Grade:      p.EcoScore,
		ExcludeIDs: []string{p.ID},
		Limit:      SimilarLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(exact) >= SimilarLimit {
		return exact, nil
	}

	exclude := make([]string, 0, len(exact)+1)
	exclude = append(exclude, p.ID)
	for _, e := range exact {
		exclude = append(exclude, e.ID)
	}
	relaxed, _, err := s.store.List(ctx, store.Query{
		Category:   p.Category,
		ExcludeIDs: exclude,
		Limit:      SimilarLimit - len(exact),
	})
	if err != nil {
		return nil, err
	}
	return append(exact, relaxed...), nil
}
