package product

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	pkgvalidator "github.com/Pesokrava/bugstore/internal/pkg/validator"
)

// Repository combines read and write access to products
type Repository interface {
	domain.ProductReader
	domain.ProductWriter
}

// Service handles product business logic
type Service struct {
	repo     Repository
	uow      domain.UnitOfWork
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new product service
func NewService(repo Repository, uow domain.UnitOfWork, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		uow:      uow,
		validate: pkgvalidator.Get(),
		logger:   log,
	}
}

// Add creates a new product
func (s *Service) Add(ctx context.Context, req Request) (*DetailedResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(req.Title, req.Description, req.Slug, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, func(ctx context.Context) error { return s.repo.Add(ctx, product) }); err != nil {
		s.logger.Error("Failed to create product", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	}).Info("Product created successfully")

	return toDetailed(product), nil
}

// GetByID retrieves a product by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DetailedResponse, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetailed(product), nil
}

// List retrieves one page of products
func (s *Service) List(ctx context.Context, pageNumber, pageSize int) ([]*Response, domain.PageInfo, error) {
	page := domain.NewPage(pageNumber, pageSize)

	products, err := s.repo.List(ctx, page)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, domain.PageInfo{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count products", err)
		return nil, domain.PageInfo{}, err
	}

	return toResponses(products), domain.NewPageInfo(page, total), nil
}

// Update replaces all fields of an existing product
func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*DetailedResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Title, req.Description, req.Slug, req.Price); err != nil {
		return nil, err
	}

	if err := s.save(ctx, func(ctx context.Context) error { return s.repo.Update(ctx, product) }); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
	}).Info("Product updated successfully")

	return toDetailed(product), nil
}

// UpdatePrice changes only the price. A negative price leaves the stored
// product untouched.
func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, req PriceRequest) (*DetailedResponse, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdatePrice(req.Price); err != nil {
		s.logger.Debugf("Rejected price %s for product %s", req.Price, id)
		return nil, err
	}

	if err := s.save(ctx, func(ctx context.Context) error { return s.repo.Update(ctx, product) }); err != nil {
		s.logger.Error("Failed to update product price", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"price":      product.Price.String(),
	}).Info("Product price updated successfully")

	return toDetailed(product), nil
}

// Delete removes a product if it exists
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.save(ctx, func(ctx context.Context) error { return s.repo.Delete(ctx, id) }); err != nil {
		s.logger.Error("Failed to delete product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deleted successfully")

	return nil
}

// save stages one change in a fresh unit of work and commits it
func (s *Service) save(ctx context.Context, stage func(ctx context.Context) error) error {
	ctx = s.uow.Begin(ctx)
	if err := stage(ctx); err != nil {
		return err
	}
	return s.uow.Commit(ctx)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", id)
			return nil, domain.NotFound(domain.MsgProductNotFound)
		}
		s.logger.Error("Failed to get product", err)
		return nil, err
	}
	return product, nil
}

func (s *Service) validateRequest(req Request) error {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return domain.Invalid(pkgvalidator.Messages(err)...)
	}
	return nil
}
