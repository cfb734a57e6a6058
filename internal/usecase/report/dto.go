package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/bugstore/internal/domain"
)

// PeriodResponse is the revenue of orders created in a date window
type PeriodResponse struct {
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// CustomerRevenueResponse is a customer's order count and spend
type CustomerRevenueResponse struct {
	CustomerID   uuid.UUID       `json:"customerId"`
	CustomerName string          `json:"customerName"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
}

// BestCustomersResponse ranks customers by spend, highest first
type BestCustomersResponse struct {
	Customers []*domain.CustomerRevenue `json:"customers"`
}
