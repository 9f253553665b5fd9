// Package model defines domain types used by the service.
package model

import "time"

// DefaultImage is the placeholder image reference for products created
// without an upload.
const DefaultImage = "/uploads/products/default.jpg"

// DefaultStock is applied when a product is created without a stock value.
const DefaultStock = 10

// Product is a catalog entry. EcoScore and EcoScoreRank are derived from
// CarbonFootprint via Classify and are never set independently of it;
// InStock is derived from Stock. SetCarbonFootprint and SetStock keep the
// pairs consistent.
type Product struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Brand           string    `json:"brand" bson:"brand"`
	Price           float64   `json:"price" bson:"price"`
	Category        string    `json:"category" bson:"category"`
	CarbonFootprint float64   `json:"carbonFootprint" bson:"carbonFootprint"`
	EcoScore        Grade     `json:"ecoScore" bson:"ecoScore"`
	EcoScoreRank    int       `json:"-" bson:"ecoScoreRank"`
	Materials       []string  `json:"materials" bson:"materials"`
	Stock           int       `json:"stock" bson:"stock"`
	InStock         bool      `json:"inStock" bson:"inStock"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Image           string    `json:"image" bson:"image"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SetCarbonFootprint records v and rederives EcoScore and EcoScoreRank.
func (p *Product) SetCarbonFootprint(v float64) {
	p.CarbonFootprint = v
	p.EcoScore = Classify(v)
	p.EcoScoreRank = p.EcoScore.Rank()
}

// SetStock records n and rederives InStock.
func (p *Product) SetStock(n int) {
	p.Stock = n
	p.InStock = n > 0
}

// Role distinguishes storefront customers from dashboard admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is an account record. Email is stored lowercased and unique.
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         Role   `json:"role" bson:"role"`
}
