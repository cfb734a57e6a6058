package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/usecase/mocks"
)

func newTestService() (*Service, *mocks.ProductRepository, *mocks.UnitOfWork) {
	repo := new(mocks.ProductRepository)
	uow := new(mocks.UnitOfWork)
	return NewService(repo, uow, logger.New("test")), repo, uow
}

func existingProduct(t *testing.T, price string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("Mug", "Blue mug", "blue-mug", decimal.RequireFromString(price))
	require.NoError(t, err)
	return p
}

func TestService_Add_Success(t *testing.T) {
	service, repo, uow := newTestService()
	req := Request{Title: "Mug", Description: "Blue mug", Slug: "blue-mug", Price: decimal.RequireFromString("12.90")}

	uow.On("Begin", mock.Anything).Return()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)

	resp, err := service.Add(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "blue-mug", resp.Slug)
	assert.True(t, resp.Price.Equal(req.Price))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestService_Add_InvalidSlugAndPrice(t *testing.T) {
	service, repo, _ := newTestService()
	req := Request{Title: "Mug", Description: "Blue mug", Slug: "Blue Mug", Price: decimal.Zero}

	resp, err := service.Add(context.Background(), req)

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Len(t, domain.Messages(err), 2)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestService_GetByID_NotFound(t *testing.T) {
	service, repo, _ := newTestService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := service.GetByID(context.Background(), id)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []string{domain.MsgProductNotFound}, domain.Messages(err))
}

func TestService_UpdatePrice_Success(t *testing.T) {
	service, repo, uow := newTestService()
	product := existingProduct(t, "10")

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	uow.On("Begin", mock.Anything).Return()
	repo.On("Update", mock.Anything, product).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)

	resp, err := service.UpdatePrice(context.Background(), product.ID, PriceRequest{Price: decimal.RequireFromString("15.5")})

	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("15.5")))
}

func TestService_UpdatePrice_NegativeLeavesStorageUnchanged(t *testing.T) {
	service, repo, uow := newTestService()
	product := existingProduct(t, "10")

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	resp, err := service.UpdatePrice(context.Background(), product.ID, PriceRequest{Price: decimal.NewFromInt(-1)})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestService_UpdatePrice_NotFound(t *testing.T) {
	service, repo, _ := newTestService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := service.UpdatePrice(context.Background(), id, PriceRequest{Price: decimal.NewFromInt(3)})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestService_Update_Success(t *testing.T) {
	service, repo, uow := newTestService()
	product := existingProduct(t, "10")
	req := Request{Title: "Cup", Description: "Red cup", Slug: "red-cup", Price: decimal.NewFromInt(8)}

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	uow.On("Begin", mock.Anything).Return()
	repo.On("Update", mock.Anything, product).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)

	resp, err := service.Update(context.Background(), product.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "red-cup", resp.Slug)
	assert.Equal(t, "Cup", product.Title)
}

func TestService_List(t *testing.T) {
	service, repo, _ := newTestService()
	products := []*domain.Product{existingProduct(t, "1"), existingProduct(t, "2")}

	repo.On("List", mock.Anything, domain.Page{Number: 1, Size: 10}).Return(products, nil)
	repo.On("Count", mock.Anything).Return(int64(2), nil)

	items, info, err := service.List(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, info.TotalPages)
}

func TestService_Delete_MissingIsNoOp(t *testing.T) {
	service, repo, uow := newTestService()
	id := uuid.New()

	uow.On("Begin", mock.Anything).Return()
	repo.On("Delete", mock.Anything, id).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)

	assert.NoError(t, service.Delete(context.Background(), id))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_Add_PriceOutsideColumn(t *testing.T) {
	for _, price := range []string{"0.001", "100000000000000000"} {
		t.Run(price, func(t *testing.T) {
			service, repo, uow := newTestService()
			req := Request{Title: "Mug", Description: "Blue mug", Slug: "blue-mug", Price: decimal.RequireFromString(price)}

			resp, err := service.Add(context.Background(), req)

			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestService_UpdatePrice_SubCentRejected(t *testing.T) {
	service, repo, uow := newTestService()
	product := existingProduct(t, "10")

	repo.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	_, err := service.UpdatePrice(context.Background(), product.ID, PriceRequest{Price: decimal.RequireFromString("9.999")})

	assert.Equal(t, []string{domain.MsgPriceScale}, domain.Messages(err))
	assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
