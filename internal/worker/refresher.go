package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
)

// RevenueCache receives freshly computed customer revenue summaries
type RevenueCache interface {
	SetCustomerRevenue(ctx context.Context, customerID uuid.UUID, summary *domain.RevenueSummary) error
}

// RevenueRefresher recomputes a customer's revenue summary from the
// database and stores it in the report cache
type RevenueRefresher struct {
	reports domain.ReportReader
	cache   RevenueCache
	metrics *metrics.Collector
	logger  *logger.Logger
}

// NewRevenueRefresher creates a new revenue refresher. collector may be nil.
func NewRevenueRefresher(reports domain.ReportReader, cache RevenueCache, collector *metrics.Collector, log *logger.Logger) *RevenueRefresher {
	return &RevenueRefresher{
		reports: reports,
		cache:   cache,
		metrics: collector,
		logger:  log,
	}
}

// Refresh recomputes the full summary rather than applying deltas, so a
// lost event is repaired by the next one for the same customer.
func (r *RevenueRefresher) Refresh(ctx context.Context, customerID uuid.UUID) error {
	summary, err := r.reports.RevenueByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to compute customer revenue: %w", err)
	}

	if err := r.cache.SetCustomerRevenue(ctx, customerID, summary); err != nil {
		return fmt.Errorf("failed to cache customer revenue: %w", err)
	}

	if r.metrics != nil {
		r.metrics.RevenueRecomputed.Inc()
	}

	r.logger.WithFields(map[string]any{
		"customer_id":  customerID.String(),
		"total_orders": summary.TotalOrders,
		"total_spent":  summary.TotalRevenue.String(),
	}).Info("Refreshed customer revenue")

	return nil
}
