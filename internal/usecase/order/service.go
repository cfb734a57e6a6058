package order

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
	pkgvalidator "github.com/Pesokrava/bugstore/internal/pkg/validator"
)

// Repository combines read and write access to orders
type Repository interface {
	domain.OrderReader
	domain.OrderWriter
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// defaultPublishTimeout bounds one event publish, JetStream ack included
const defaultPublishTimeout = 5 * time.Second

// CacheInvalidator drops cached reports affected by a customer's orders
type CacheInvalidator interface {
	InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error
}

// Service handles order business logic. Every mutation commits through the
// unit of work, then invalidates report caches and publishes an event.
type Service struct {
	orders    Repository
	customers domain.CustomerReader
	products  domain.ProductReader
	uow       domain.UnitOfWork
	cache     CacheInvalidator
	publisher EventPublisher
	metrics   *metrics.Collector
	validate  *validator.Validate
	logger    *logger.Logger
	pending   sync.WaitGroup

	publishTimeout time.Duration
}

// NewService creates a new order service
func NewService(
	orders Repository,
	customers domain.CustomerReader,
	products domain.ProductReader,
	uow domain.UnitOfWork,
	cache CacheInvalidator,
	publisher EventPublisher,
	collector *metrics.Collector,
	log *logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		uow:       uow,
		cache:     cache,
		publisher: publisher,
		metrics:   collector,
		validate:  pkgvalidator.Get(),
		logger:    log,

		publishTimeout: defaultPublishTimeout,
	}
}

// Create opens an empty order for an existing customer
func (s *Service) Create(ctx context.Context, req CreateRequest) (*SummaryResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, s.notFound(err, domain.MsgCustomerNotFound, "customer", req.CustomerID)
	}

	order := domain.NewOrder(req.CustomerID)

	txCtx := s.uow.Begin(ctx)
	if err := s.orders.Add(txCtx, order); err != nil {
		s.logger.Error("Failed to stage order", err)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to create order", err)
		return nil, err
	}

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to reload created order", err)
		return nil, err
	}

	s.afterChange(ctx, domain.EventOrderCreated, created)
	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}

	s.logger.WithFields(map[string]interface{}{
		"order_id":    created.ID,
		"customer_id": created.CustomerID,
	}).Info("Order created successfully")

	return toSummary(created), nil
}

// AddLine adds a product line to an existing order
func (s *Service) AddLine(ctx context.Context, orderID uuid.UUID, req LineRequest) (*DetailedResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, s.notFound(err, domain.MsgProductNotFound, "product", req.ProductID)
	}

	line, err := order.AddLine(req.ProductID, req.Quantity, req.Price)
	if err != nil {
		s.logger.Debugf("Rejected line for order %s: %v", orderID, err)
		return nil, err
	}

	txCtx := s.uow.Begin(ctx)
	if err := s.orders.AddLine(txCtx, line); err != nil {
		s.logger.Error("Failed to stage order line", err)
		return nil, err
	}
	if err := s.orders.Update(txCtx, order); err != nil {
		s.logger.Error("Failed to stage order update", err)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to add order line", err)
		return nil, err
	}

	updated, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to reload order", err)
		return nil, err
	}

	s.afterChange(ctx, domain.EventOrderLineAdded, updated)
	if s.metrics != nil {
		s.metrics.OrderLinesAdded.Inc()
	}

	s.logger.WithFields(map[string]interface{}{
		"order_id":   orderID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	}).Info("Order line added successfully")

	return toDetailed(updated), nil
}

// RemoveLine removes the line holding a product from an existing order
func (s *Service) RemoveLine(ctx context.Context, orderID uuid.UUID, req RemoveLineRequest) (*DetailedResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line := order.FindLine(req.ProductID)
	if line == nil {
		s.logger.Debugf("Order %s has no line for product %s", orderID, req.ProductID)
		return nil, domain.NotFound(domain.MsgOrderLineNotFound)
	}

	order.RemoveLine(line)

	txCtx := s.uow.Begin(ctx)
	if err := s.orders.RemoveLine(txCtx, line); err != nil {
		s.logger.Error("Failed to stage order line removal", err)
		return nil, err
	}
	if err := s.orders.Update(txCtx, order); err != nil {
		s.logger.Error("Failed to stage order update", err)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to remove order line", err)
		return nil, err
	}

	s.afterChange(ctx, domain.EventOrderLineRemoved, order)
	if s.metrics != nil {
		s.metrics.OrderLinesRemoved.Inc()
	}

	s.logger.WithFields(map[string]interface{}{
		"order_id":   orderID,
		"product_id": req.ProductID,
	}).Info("Order line removed successfully")

	return toDetailed(order), nil
}

// Delete removes an order and its lines. A missing order is not an error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("Failed to get order for deletion", err)
		return err
	}

	txCtx := s.uow.Begin(ctx)
	if err := s.orders.Delete(txCtx, id); err != nil {
		s.logger.Error("Failed to stage order delete", err)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to delete order", err)
		return err
	}

	if order != nil {
		s.afterChange(ctx, domain.EventOrderDeleted, order)
	}

	s.logger.WithFields(map[string]interface{}{
		"order_id": id,
		"existed":  order != nil,
	}).Info("Order deleted successfully")

	return nil
}

// GetByID retrieves an order with its lines
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DetailedResponse, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetailed(order), nil
}

// List retrieves one page of orders
func (s *Service) List(ctx context.Context, pageNumber, pageSize int) ([]*SummaryResponse, domain.PageInfo, error) {
	page := domain.NewPage(pageNumber, pageSize)

	orders, err := s.orders.List(ctx, page)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, domain.PageInfo{}, err
	}

	total, err := s.orders.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count orders", err)
		return nil, domain.PageInfo{}, err
	}

	return toSummaries(orders), domain.NewPageInfo(page, total), nil
}

// ListByCustomer retrieves one page of a customer's orders. An unknown
// customer yields an empty page.
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID, pageNumber, pageSize int) ([]*SummaryResponse, domain.PageInfo, error) {
	page := domain.NewPage(pageNumber, pageSize)

	orders, err := s.orders.ListByCustomer(ctx, customerID, page)
	if err != nil {
		s.logger.Error("Failed to list customer orders", err)
		return nil, domain.PageInfo{}, err
	}

	total, err := s.orders.CountByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to count customer orders", err)
		return nil, domain.PageInfo{}, err
	}

	return toSummaries(orders), domain.NewPageInfo(page, total), nil
}

// Wait blocks until in-flight event publishes have finished
func (s *Service) Wait() {
	s.pending.Wait()
}

// WaitContext is Wait bounded by ctx. It returns ctx.Err() if publishes are
// still running when ctx is done.
func (s *Service) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, domain.MsgOrderNotFound, "order", id)
	}
	return order, nil
}

// notFound maps a repository miss to a NotFound error carrying msg
func (s *Service) notFound(err error, msg, entity string, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debugf("%s not found: %s", entity, id)
		return domain.NotFound(msg)
	}
	s.logger.Errorf(err, "Failed to get %s %s", entity, id)
	return err
}

func (s *Service) validateRequest(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Debugf("Order request validation failed: %v", err)
		return domain.Invalid(pkgvalidator.Messages(err)...)
	}
	return nil
}

// afterChange runs the post-commit side effects. Neither can fail the request.
func (s *Service) afterChange(ctx context.Context, eventType string, order *domain.Order) {
	if s.cache != nil {
		if err := s.cache.InvalidateCustomer(ctx, order.CustomerID); err != nil {
			s.logger.Warnf("Failed to invalidate report cache for customer %s: %v", order.CustomerID, err)
		}
	}

	s.publishEvent(eventType, order)
}

// publishEvent publishes an order event (non-blocking)
func (s *Service) publishEvent(eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(domain.NewOrderEvent(eventType, order))
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for order %s", order.ID)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()

		status := "ok"
		if err := s.publisher.Publish(ctx, domain.OrdersSubject, data); err != nil {
			status = "error"
			s.logger.Errorf(err, "Failed to publish event for order %s", order.ID)
		}
		if s.metrics != nil {
			s.metrics.EventsPublished.WithLabelValues(eventType, status).Inc()
		}
	}()
}
