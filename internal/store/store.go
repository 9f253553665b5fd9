// Package store abstracts the product document store behind a small
// find/sort/paginate/count interface with in-memory and MongoDB backends.
package store

import (
	"context"
	"errors"

	"github.com/ecocart/ecocart/internal/model"
)

// ErrNotFound reports that no document matched the given id.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken reports a registration attempt with an existing email.
var ErrEmailTaken = errors.New("email already registered")

// Sort identifies one of the recognized catalog orderings. Ties are left
// to the backend's natural (insertion) order.
type Sort string

const (
	SortGrade     Sort = "grade" // ecoScore rank ascending, A+ first
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortCarbonAsc Sort = "carbon_asc"
	SortNewest    Sort = "newest" // createdAt descending
)

// Query is the filter/sort/pagination specification built per request.
// Zero values mean "no constraint": empty Category/Grade/Search apply no
// filter, nil price bounds leave the range open on that side, Limit 0
// means unbounded.
//
// Search matches case-insensitively as a literal substring against name,
// brand or description (OR across the three, AND with other filters).
// Backends must never interpret pattern metacharacters in the term.
type Query struct {
	Category   string
	Grade      model.Grade
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	ExcludeIDs []string
	Sort       Sort
	Offset     int
	Limit      int
}

// ProductStore is the document-store contract for the products collection.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (model.Product, error)
	// List returns one page of matches plus the total match count
	// ignoring pagination.
	List(ctx context.Context, q Query) ([]model.Product, int64, error)
	// All returns every product, newest first. Used by the admin
	// dashboard listing.
	All(ctx context.Context) ([]model.Product, error)
}

// UserStore is the account store contract.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

// Store combines both collections; each backend implements it.
type Store interface {
	ProductStore
	UserStore
	Close(ctx context.Context) error
}
