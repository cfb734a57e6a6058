package customer

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	pkgvalidator "github.com/Pesokrava/bugstore/internal/pkg/validator"
)

// Repository combines read and write access to customers
type Repository interface {
	domain.CustomerReader
	domain.CustomerWriter
}

// CacheInvalidator drops cached reports that mention a customer
type CacheInvalidator interface {
	InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error
}

// Service handles customer business logic
type Service struct {
	repo     Repository
	uow      domain.UnitOfWork
	cache    CacheInvalidator
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new customer service. cache may be nil.
func NewService(repo Repository, uow domain.UnitOfWork, cache CacheInvalidator, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		uow:      uow,
		cache:    cache,
		validate: pkgvalidator.Get(),
		logger:   log,
	}
}

// Add registers a new customer. The email must not be in use.
func (s *Service) Add(ctx context.Context, req Request) (*Response, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to check customer email", err)
		return nil, err
	}
	if exists {
		s.logger.Debugf("Customer email already registered: %s", req.Email)
		return nil, domain.NewError(domain.ErrConflict, domain.MsgEmailAlreadyRegistered)
	}

	customer := domain.NewCustomer(req.Name, req.Email, req.Phone, req.BirthDate)

	ctx = s.uow.Begin(ctx)
	if err := s.repo.Add(ctx, customer); err != nil {
		s.logger.Error("Failed to stage customer", err)
		return nil, err
	}
	if err := s.uow.Commit(ctx); err != nil {
		s.logger.Error("Failed to create customer", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("Customer created successfully")

	return toResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	customer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// List retrieves one page of customers
func (s *Service) List(ctx context.Context, pageNumber, pageSize int) ([]*Response, domain.PageInfo, error) {
	page := domain.NewPage(pageNumber, pageSize)

	customers, err := s.repo.List(ctx, page)
	if err != nil {
		s.logger.Error("Failed to list customers", err)
		return nil, domain.PageInfo{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count customers", err)
		return nil, domain.PageInfo{}, err
	}

	return toResponses(customers), domain.NewPageInfo(page, total), nil
}

// Update replaces all fields of an existing customer. Changing the email to
// one used by another customer is a conflict.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Response, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.Email != req.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			s.logger.Error("Failed to check customer email", err)
			return nil, err
		}
		if exists {
			s.logger.Debugf("Customer email already registered: %s", req.Email)
			return nil, domain.NewError(domain.ErrConflict, domain.MsgEmailAlreadyRegistered)
		}
	}

	customer.Update(req.Name, req.Email, req.Phone, req.BirthDate)

	ctx = s.uow.Begin(ctx)
	if err := s.repo.Update(ctx, customer); err != nil {
		s.logger.Error("Failed to stage customer update", err)
		return nil, err
	}
	if err := s.uow.Commit(ctx); err != nil {
		s.logger.Error("Failed to update customer", err)
		return nil, err
	}

	s.invalidateReports(ctx, customer.ID)

	s.logger.WithFields(map[string]interface{}{
		"customer_id": customer.ID,
	}).Info("Customer updated successfully")

	return toResponse(customer), nil
}

// Delete removes an existing customer
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	ctx = s.uow.Begin(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to stage customer delete", err)
		return err
	}
	if err := s.uow.Commit(ctx); err != nil {
		s.logger.Error("Failed to delete customer", err)
		return err
	}

	s.invalidateReports(ctx, id)

	s.logger.WithFields(map[string]interface{}{
		"customer_id": id,
	}).Info("Customer deleted successfully")

	return nil
}

// invalidateReports drops cached rankings holding the customer's name.
// Failures only delay freshness until the TTL expires.
func (s *Service) invalidateReports(ctx context.Context, customerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCustomer(ctx, customerID); err != nil {
		s.logger.Warnf("Failed to invalidate report cache for customer %s: %v", customerID, err)
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Customer not found: %s", id)
			return nil, domain.NotFound(domain.MsgCustomerNotFound)
		}
		s.logger.Error("Failed to get customer", err)
		return nil, err
	}
	return customer, nil
}

func (s *Service) validateRequest(req Request) error {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Debugf("Customer validation failed: %v", err)
		return domain.Invalid(pkgvalidator.Messages(err)...)
	}
	return nil
}
