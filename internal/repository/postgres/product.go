package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// ProductRepository implements domain.ProductReader and domain.ProductWriter
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, title, description, slug, price
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// List retrieves a paginated list of products
func (r *ProductRepository) List(ctx context.Context, page domain.Page) ([]*domain.Product, error) {
	query := `
		SELECT id, title, description, slug, price
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	products := []*domain.Product{}
	err := r.db.SelectContext(ctx, &products, query, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return products, nil
}

// Count returns the total number of products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Add stages an insert
func (r *ProductRepository) Add(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, slug, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	return stageExec(ctx, query,
		product.ID, product.Title, product.Description, product.Slug, product.Price)
}

// Update stages a full update
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET title = $1, description = $2, slug = $3, price = $4
		WHERE id = $5
	`

	return stageExec(ctx, query,
		product.Title, product.Description, product.Slug, product.Price, product.ID)
}

// Delete stages a delete
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return stageExec(ctx, `DELETE FROM products WHERE id = $1`, id)
}
