package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue
type Product struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Slug        string          `db:"slug"`
	Price       decimal.Decimal `db:"price"`
}

// NewProduct creates a product, rejecting a price that cannot be stored
func NewProduct(title, description, slug string, price decimal.Decimal) (*Product, error) {
	p := &Product{ID: newID()}
	if err := p.Update(title, description, slug, price); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces all fields. The product is left untouched on failure.
func (p *Product) Update(title, description, slug string, price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Title = title
	p.Description = description
	p.Slug = slug
	p.Price = price
	return nil
}

// UpdatePrice replaces only the price
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

// ProductReader defines read access to products
type ProductReader interface {
	// GetByID retrieves a product by ID, ErrNotFound if absent
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves one page of products
	List(ctx context.Context, page Page) ([]*Product, error)

	// Count returns the total number of products
	Count(ctx context.Context) (int64, error)
}

// ProductWriter stages product changes in the current unit of work
type ProductWriter interface {
	Add(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
