package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueSummary aggregates order count and revenue
type RevenueSummary struct {
	TotalOrders  int64           `db:"total_orders" json:"totalOrders"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"totalRevenue"`
}

// CustomerRevenue is a customer's order count and spend
type CustomerRevenue struct {
	CustomerID   uuid.UUID       `db:"customer_id" json:"customerId"`
	CustomerName string          `db:"customer_name" json:"customerName"`
	TotalOrders  int64           `db:"total_orders" json:"totalOrders"`
	TotalSpent   decimal.Decimal `db:"total_spent" json:"totalSpent"`
}

// ReportReader runs read-only aggregations over orders
type ReportReader interface {
	// RevenueByPeriod aggregates orders created within [start, end]
	RevenueByPeriod(ctx context.Context, start, end time.Time) (*RevenueSummary, error)

	// RevenueByCustomer aggregates all orders of one customer
	RevenueByCustomer(ctx context.Context, customerID uuid.UUID) (*RevenueSummary, error)

	// BestCustomers ranks customers by total spend, ties by customer id
	BestCustomers(ctx context.Context, limit int) ([]*CustomerRevenue, error)
}
