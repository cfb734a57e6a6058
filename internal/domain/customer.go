package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer represents a store customer
type Customer struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	BirthDate time.Time `db:"birth_date"`
}

// NewCustomer creates a customer with a fresh time-ordered identity
func NewCustomer(name, email, phone string, birthDate time.Time) *Customer {
	c := &Customer{ID: newID()}
	c.Update(name, email, phone, birthDate)
	return c
}

// Update replaces all mutable fields at once
func (c *Customer) Update(name, email, phone string, birthDate time.Time) {
	c.Name = strings.TrimSpace(name)
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.BirthDate = birthDate.UTC()
}

// CustomerReader defines read access to customers
type CustomerReader interface {
	// GetByID retrieves a customer by ID, ErrNotFound if absent
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// List retrieves one page of customers
	List(ctx context.Context, page Page) ([]*Customer, error)

	// Count returns the total number of customers
	Count(ctx context.Context) (int64, error)

	// ExistsByEmail reports whether any customer uses the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerWriter stages customer changes in the current unit of work
type CustomerWriter interface {
	Add(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
