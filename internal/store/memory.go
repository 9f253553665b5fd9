package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/google/uuid"
)

// Memory is an in-process backend used by tests and the zero-dependency
// dev mode. Products keep insertion order, so stable sorts give the same
// tie-break the document database's natural order would.
type Memory struct {
	mu       sync.RWMutex
	products []model.Product
	users    []model.User
	now      func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// SetClock overrides the timestamp source. Test hook.
func (m *Memory) SetClock(now func() time.Time) { m.now = now }

func (m *Memory) Create(ctx context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	t := m.now().UTC()
	p.CreatedAt = t
	p.UpdatedAt = t
	m.products = append(m.products, *p)
	return nil
}

func (m *Memory) Update(ctx context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			p.CreatedAt = m.products[i].CreatedAt
			p.UpdatedAt = m.now().UTC()
			m.products[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) GetByID(ctx context.Context, id string) (model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.products {
		if m.products[i].ID == id {
			return m.products[i], nil
		}
	}
	return model.Product{}, ErrNotFound
}

func (m *Memory) List(ctx context.Context, q Query) ([]model.Product, int64, error) {
	m.mu.RLock()
	matched := make([]model.Product, 0, len(m.products))
	for i := range m.products {
		if matches(&m.products[i], q) {
			matched = append(matched, m.products[i])
		}
	}
	m.mu.RUnlock()

	total := int64(len(matched))
	sortProducts(matched, q.Sort)

	if q.Offset >= len(matched) {
		return []model.Product{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (m *Memory) All(ctx context.Context) ([]model.Product, error) {
	out, _, err := m.List(ctx, Query{Sort: SortNewest})
	return out, err
}

func matches(p *model.Product, q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Grade != "" && p.EcoScore != q.Grade {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	for _, id := range q.ExcludeIDs {
		if p.ID == id {
			return false
		}
	}
	if q.Search != "" {
		// Literal substring match, so metacharacters in the term need
		// no escaping here.
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	return true
}

func sortProducts(ps []model.Product, s Sort) {
	switch s {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortCarbonAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].CarbonFootprint < ps[j].CarbonFootprint })
	case SortNewest:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
	case SortGrade:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].EcoScoreRank < ps[j].EcoScoreRank })
	}
}

func (m *Memory) CreateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(u.Email)
	for i := range m.users {
		if m.users[i].Email == email {
			return ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = email
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(email)
	for i := range m.users {
		if m.users[i].Email == email {
			return m.users[i], nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) GetUserByID(ctx context.Context, id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.users {
		if m.users[i].ID == id {
			return m.users[i], nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) Close(ctx context.Context) error { return nil }
