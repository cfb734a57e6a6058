package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
)

const (
	// DefaultTopCustomers is used when the requested ranking size is not positive
	DefaultTopCustomers = 5

	// MaxTopCustomers caps the ranking size
	MaxTopCustomers = 100
)

// Cache stores report results between order changes
type Cache interface {
	GetCustomerRevenue(ctx context.Context, customerID uuid.UUID) (*domain.RevenueSummary, error)
	SetCustomerRevenue(ctx context.Context, customerID uuid.UUID, summary *domain.RevenueSummary) error
	GetBestCustomers(ctx context.Context, limit int) ([]*domain.CustomerRevenue, error)
	SetBestCustomers(ctx context.Context, limit int, customers []*domain.CustomerRevenue) error
}

// Service answers revenue reports, reading through the cache when one is set
type Service struct {
	reports   domain.ReportReader
	customers domain.CustomerReader
	cache     Cache
	metrics   *metrics.Collector
	logger    *logger.Logger
}

// NewService creates a new report service. cache may be nil.
func NewService(reports domain.ReportReader, customers domain.CustomerReader, cache Cache, collector *metrics.Collector, log *logger.Logger) *Service {
	return &Service{
		reports:   reports,
		customers: customers,
		cache:     cache,
		metrics:   collector,
		logger:    log,
	}
}

// RevenueByPeriod aggregates orders created within [start, end]
func (s *Service) RevenueByPeriod(ctx context.Context, start, end time.Time) (*PeriodResponse, error) {
	start, end = start.UTC(), end.UTC()

	summary, err := s.reports.RevenueByPeriod(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to compute revenue by period", err)
		return nil, err
	}

	return &PeriodResponse{
		StartDate:    start,
		EndDate:      end,
		TotalOrders:  summary.TotalOrders,
		TotalRevenue: summary.TotalRevenue,
	}, nil
}

// RevenueByCustomer aggregates all orders of an existing customer
func (s *Service) RevenueByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerRevenueResponse, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Customer not found: %s", customerID)
			return nil, domain.NotFound(domain.MsgCustomerNotFound)
		}
		s.logger.Error("Failed to get customer", err)
		return nil, err
	}

	summary, err := s.customerRevenue(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerRevenueResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		TotalOrders:  summary.TotalOrders,
		TotalSpent:   summary.TotalRevenue,
	}, nil
}

func (s *Service) customerRevenue(ctx context.Context, customerID uuid.UUID) (*domain.RevenueSummary, error) {
	if s.cache != nil {
		summary, err := s.cache.GetCustomerRevenue(ctx, customerID)
		if err == nil {
			s.logger.Debugf("Cache hit for customer %s revenue", customerID)
			s.hit(true)
			return summary, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warnf("Failed to read revenue cache for customer %s: %v", customerID, err)
		}
		s.hit(false)
	}

	summary, err := s.reports.RevenueByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to compute revenue by customer", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCustomerRevenue(ctx, customerID, summary); err != nil {
			s.logger.Warnf("Failed to cache revenue for customer %s: %v", customerID, err)
		}
	}

	return summary, nil
}

// BestCustomers returns the top customers by spend. n <= 0 falls back to
// DefaultTopCustomers and n is capped at MaxTopCustomers.
func (s *Service) BestCustomers(ctx context.Context, n int) (*BestCustomersResponse, error) {
	limit := ClampTop(n)

	if s.cache != nil {
		customers, err := s.cache.GetBestCustomers(ctx, limit)
		if err == nil {
			s.logger.Debugf("Cache hit for best customers (limit=%d)", limit)
			s.hit(true)
			return &BestCustomersResponse{Customers: customers}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warnf("Failed to read best customers cache (limit=%d): %v", limit, err)
		}
		s.hit(false)
	}

	customers, err := s.reports.BestCustomers(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to compute best customers", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetBestCustomers(ctx, limit, customers); err != nil {
			s.logger.Warnf("Failed to cache best customers (limit=%d): %v", limit, err)
		}
	}

	return &BestCustomersResponse{Customers: customers}, nil
}

// ClampTop normalizes a requested ranking size
func ClampTop(n int) int {
	if n <= 0 {
		return DefaultTopCustomers
	}
	if n > MaxTopCustomers {
		return MaxTopCustomers
	}
	return n
}

func (s *Service) hit(ok bool) {
	if s.metrics == nil {
		return
	}
	if ok {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
	}
}
