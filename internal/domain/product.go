package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a painting in the catalog
type Product struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Image      string          `json:"image" db:"image"`
	Article    string          `json:"article" db:"article"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Size       string          `json:"size" db:"size"`
	IsDeleted  bool            `json:"is_deleted" db:"is_deleted"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	Categories []Category      `json:"categories,omitempty" db:"-"`
}

// HasCategory reports whether the product is linked to a category with the given name.
// The comparison goes through the normalized form.
func (p *Product) HasCategory(name string) bool {
	normalized := NormalizeName(name)
	for _, c := range p.Categories {
		if c.NormalizedName == normalized {
			return true
		}
	}
	return false
}

// Category represents a product category
type Category struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	NormalizedName string    `json:"normalized_name" db:"normalized_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// NewCategory builds a category with its normalized lookup key set.
func NewCategory(name string) *Category {
	name = strings.TrimSpace(name)
	return &Category{
		ID:             uuid.New(),
		Name:           name,
		NormalizedName: NormalizeName(name),
		CreatedAt:      time.Now(),
	}
}

// CategoryProduct is one edge of the product/category relation.
type CategoryProduct struct {
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
}

// NormalizeName returns the case-insensitive lookup key for a name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
