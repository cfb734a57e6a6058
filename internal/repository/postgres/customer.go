package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// CustomerRepository implements domain.CustomerReader and domain.CustomerWriter
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, birth_date
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &customer, nil
}

// List retrieves a page of customers in creation order
func (r *CustomerRepository) List(ctx context.Context, page domain.Page) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, birth_date
		FROM customers
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	customers := []*domain.Customer{}
	err := r.db.SelectContext(ctx, &customers, query, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// Count returns the total number of customers
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ExistsByEmail reports whether the email is already registered
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Add stages an insert
func (r *CustomerRepository) Add(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, birth_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	return stageExec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.BirthDate)
}

// Update stages a full update
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, birth_date = $4
		WHERE id = $5
	`

	return stageExec(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.BirthDate, customer.ID)
}

// Delete stages a delete
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return stageExec(ctx, `DELETE FROM customers WHERE id = $1`, id)
}
