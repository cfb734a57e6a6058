package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/bugstore/internal/domain"
)

const orderColumns = `id, customer_id, created_at, updated_at`

// OrderRepository implements domain.OrderReader and domain.OrderWriter.
// Orders are always returned with their lines.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order and its lines
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := r.attachLines(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}

	return &order, nil
}

// List retrieves a page of orders, newest first
func (r *OrderRepository) List(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	return r.selectOrders(ctx, query, page.Size, page.Offset())
}

// ListByCustomer retrieves a page of one customer's orders, newest first
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page domain.Page) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	return r.selectOrders(ctx, query, customerID, page.Size, page.Offset())
}

// Count returns the total number of orders
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountByCustomer returns the number of orders of one customer
func (r *OrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) selectOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachLines loads the lines of all given orders in one query
func (r *OrderRepository) attachLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Lines = []*domain.OrderLine{}
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	query := `
		SELECT l.id, l.order_id, l.product_id, l.quantity, l.total, p.price
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ANY($1::uuid[])
		ORDER BY l.id
	`

	var lines []*domain.OrderLine
	if err := r.db.SelectContext(ctx, &lines, query, pq.StringArray(ids)); err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}

	for _, l := range lines {
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}

	return nil
}

// Add stages the order insert followed by its lines
func (r *OrderRepository) Add(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	if err := stageExec(ctx, query, order.ID, order.CustomerID, order.CreatedAt, order.UpdatedAt); err != nil {
		return err
	}

	for _, line := range order.Lines {
		if err := r.AddLine(ctx, line); err != nil {
			return err
		}
	}

	return nil
}

// Update stages the order header update. Lines are staged separately.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return stageExec(ctx, `UPDATE orders SET updated_at = $1 WHERE id = $2`, order.UpdatedAt, order.ID)
}

// AddLine stages a line insert
func (r *OrderRepository) AddLine(ctx context.Context, line *domain.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, total)
		VALUES ($1, $2, $3, $4, $5)
	`

	return stageExec(ctx, query, line.ID, line.OrderID, line.ProductID, line.Quantity, line.Total)
}

// RemoveLine stages a line delete
func (r *OrderRepository) RemoveLine(ctx context.Context, line *domain.OrderLine) error {
	return stageExec(ctx, `DELETE FROM order_lines WHERE id = $1`, line.ID)
}

// Delete stages an order delete; lines go with it through the cascade
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return stageExec(ctx, `DELETE FROM orders WHERE id = $1`, id)
}
