package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// ReportRepository implements domain.ReportReader with SQL aggregates
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// RevenueByPeriod counts orders created in [start, end] and sums their lines.
// Orders without lines count with zero revenue.
func (r *ReportRepository) RevenueByPeriod(ctx context.Context, start, end time.Time) (*domain.RevenueSummary, error) {
	query := `
		SELECT COUNT(DISTINCT o.id) AS total_orders,
		       COALESCE(SUM(l.total), 0) AS total_revenue
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.created_at >= $1 AND o.created_at <= $2
	`

	var summary domain.RevenueSummary
	if err := r.db.GetContext(ctx, &summary, query, start, end); err != nil {
		return nil, err
	}

	return &summary, nil
}

// RevenueByCustomer counts one customer's orders and sums their lines
func (r *ReportRepository) RevenueByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.RevenueSummary, error) {
	query := `
		SELECT COUNT(DISTINCT o.id) AS total_orders,
		       COALESCE(SUM(l.total), 0) AS total_revenue
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.customer_id = $1
	`

	var summary domain.RevenueSummary
	if err := r.db.GetContext(ctx, &summary, query, customerID); err != nil {
		return nil, err
	}

	return &summary, nil
}

// BestCustomers ranks customers with at least one order by total spend
func (r *ReportRepository) BestCustomers(ctx context.Context, limit int) ([]*domain.CustomerRevenue, error) {
	query := `
		SELECT c.id AS customer_id,
		       c.name AS customer_name,
		       COUNT(DISTINCT o.id) AS total_orders,
		       COALESCE(SUM(l.total), 0) AS total_spent
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_lines l ON l.order_id = o.id
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC, c.id ASC
		LIMIT $1
	`

	customers := []*domain.CustomerRevenue{}
	if err := r.db.SelectContext(ctx, &customers, query, limit); err != nil {
		return nil, err
	}

	return customers, nil
}
