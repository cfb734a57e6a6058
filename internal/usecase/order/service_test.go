package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
	"github.com/Pesokrava/bugstore/internal/usecase/mocks"
)

type fixture struct {
	service   *Service
	orders    *mocks.OrderRepository
	customers *mocks.CustomerRepository
	products  *mocks.ProductRepository
	uow       *mocks.UnitOfWork
	cache     *mocks.ReportCache
	publisher *mocks.EventPublisher
}

func newFixture() *fixture {
	f := &fixture{
		orders:    new(mocks.OrderRepository),
		customers: new(mocks.CustomerRepository),
		products:  new(mocks.ProductRepository),
		uow:       new(mocks.UnitOfWork),
		cache:     new(mocks.ReportCache),
		publisher: new(mocks.EventPublisher),
	}
	f.service = NewService(f.orders, f.customers, f.products, f.uow, f.cache, f.publisher,
		metrics.NewCollector("test"), logger.New("test"))
	return f
}

// expectCommit allows one unit of work to be started and committed
func (f *fixture) expectCommit(err error) {
	f.uow.On("Begin", mock.Anything).Return().Once()
	f.uow.On("Commit", mock.Anything).Return(err).Once()
}

func (f *fixture) expectSideEffects(customerID uuid.UUID) {
	f.cache.On("InvalidateCustomer", mock.Anything, customerID).Return(nil)
	f.publisher.On("Publish", mock.Anything, domain.OrdersSubject, mock.Anything).Return(nil)
}

func orderWithLine(t *testing.T, productID uuid.UUID, quantity int, price string) *domain.Order {
	t.Helper()
	order := domain.NewOrder(uuid.New())
	_, err := order.AddLine(productID, quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return order
}

func TestService_Create_Success(t *testing.T) {
	f := newFixture()
	customerID := uuid.New()
	customer := domain.NewCustomer("Ana", "a@b.com", "1", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	reloaded := domain.NewOrder(customerID)
	f.customers.On("GetByID", mock.Anything, customerID).Return(customer, nil)
	f.orders.On("Add", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.CustomerID == customerID && len(o.Lines) == 0 && o.UpdatedAt == nil
	})).Return(nil)
	f.expectCommit(nil)
	f.orders.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(reloaded, nil)
	f.expectSideEffects(customerID)

	resp, err := f.service.Create(context.Background(), CreateRequest{CustomerID: customerID})
	f.service.Wait()

	require.NoError(t, err)
	assert.Equal(t, reloaded.ID, resp.ID)
	assert.Equal(t, customerID, resp.CustomerID)
	assert.True(t, resp.Total.IsZero())
	f.uow.AssertExpectations(t)
	f.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestService_Create_MissingCustomerID(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), CreateRequest{})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{"customerId is required"}, domain.Messages(err))
}

func TestService_Create_UnknownCustomer(t *testing.T) {
	f := newFixture()
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, customerID).Return(nil, domain.ErrNotFound)

	_, err := f.service.Create(context.Background(), CreateRequest{CustomerID: customerID})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestService_AddLine_Success(t *testing.T) {
	f := newFixture()
	order := domain.NewOrder(uuid.New())
	product, err := domain.NewProduct("Mug", "Blue mug", "blue-mug", decimal.RequireFromString("50.00"))
	require.NoError(t, err)

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	f.orders.On("AddLine", mock.Anything, mock.AnythingOfType("*domain.OrderLine")).Return(nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectCommit(nil)
	f.expectSideEffects(order.CustomerID)

	resp, err := f.service.AddLine(context.Background(), order.ID, LineRequest{
		ProductID: product.ID,
		Quantity:  2,
		Price:     decimal.RequireFromString("50.00"),
	})
	f.service.Wait()

	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("100.00")))
	assert.NotNil(t, resp.UpdatedAt)
	f.orders.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestService_AddLine_DuplicateProduct(t *testing.T) {
	f := newFixture()
	productID := uuid.New()
	order := orderWithLine(t, productID, 2, "50.00")
	product := &domain.Product{ID: productID, Price: decimal.RequireFromString("50.00")}

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.products.On("GetByID", mock.Anything, productID).Return(product, nil)

	resp, err := f.service.AddLine(context.Background(), order.ID, LineRequest{
		ProductID: productID,
		Quantity:  1,
		Price:     decimal.RequireFromString("50.00"),
	})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
	assert.True(t, order.Total().Equal(decimal.RequireFromString("100.00")))
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestService_AddLine_ValidationAggregates(t *testing.T) {
	f := newFixture()

	_, err := f.service.AddLine(context.Background(), uuid.New(), LineRequest{Quantity: 0, Price: decimal.Zero})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Len(t, domain.Messages(err), 3)
	f.orders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_AddLine_OrderNotFound(t *testing.T) {
	f := newFixture()
	orderID := uuid.New()

	f.orders.On("GetByID", mock.Anything, orderID).Return(nil, domain.ErrNotFound)

	_, err := f.service.AddLine(context.Background(), orderID, LineRequest{
		ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(1),
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []string{domain.MsgOrderNotFound}, domain.Messages(err))
}

func TestService_AddLine_ProductNotFound(t *testing.T) {
	f := newFixture()
	order := domain.NewOrder(uuid.New())
	productID := uuid.New()

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.products.On("GetByID", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	_, err := f.service.AddLine(context.Background(), order.ID, LineRequest{
		ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(1),
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []string{domain.MsgProductNotFound}, domain.Messages(err))
	assert.Empty(t, order.Lines)
}

func TestService_RemoveLine_Success(t *testing.T) {
	f := newFixture()
	productID := uuid.New()
	order := orderWithLine(t, productID, 2, "50.00")

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("RemoveLine", mock.Anything, mock.AnythingOfType("*domain.OrderLine")).Return(nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectCommit(nil)
	f.expectSideEffects(order.CustomerID)

	resp, err := f.service.RemoveLine(context.Background(), order.ID, RemoveLineRequest{ProductID: productID})
	f.service.Wait()

	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Total.IsZero())
}

func TestService_RemoveLine_NoLineForProduct(t *testing.T) {
	f := newFixture()
	order := orderWithLine(t, uuid.New(), 1, "10")

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.service.RemoveLine(context.Background(), order.ID, RemoveLineRequest{ProductID: uuid.New()})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []string{domain.MsgOrderLineNotFound}, domain.Messages(err))
	assert.Len(t, order.Lines, 1)
}

func TestService_Delete_Missing(t *testing.T) {
	f := newFixture()
	id := uuid.New()

	f.orders.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)
	f.orders.On("Delete", mock.Anything, id).Return(nil)
	f.expectCommit(nil)

	err := f.service.Delete(context.Background(), id)
	f.service.Wait()

	assert.NoError(t, err)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "InvalidateCustomer", mock.Anything, mock.Anything)
}

func TestService_Delete_PublishesEvent(t *testing.T) {
	f := newFixture()
	order := orderWithLine(t, uuid.New(), 3, "4.00")

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Delete", mock.Anything, order.ID).Return(nil)
	f.expectCommit(nil)
	f.cache.On("InvalidateCustomer", mock.Anything, order.CustomerID).Return(nil)

	var published domain.OrderEvent
	f.publisher.On("Publish", mock.Anything, domain.OrdersSubject, mock.Anything).
		Run(func(args mock.Arguments) {
			_ = json.Unmarshal(args.Get(2).([]byte), &published)
		}).
		Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), order.ID))
	f.service.Wait()

	assert.Equal(t, domain.EventOrderDeleted, published.EventType)
	assert.Equal(t, order.ID, published.OrderID)
	assert.Equal(t, order.CustomerID, published.CustomerID)
	assert.True(t, published.Total.Equal(decimal.RequireFromString("12")))
}

func TestService_SideEffectFailuresDoNotFailRequest(t *testing.T) {
	f := newFixture()
	productID := uuid.New()
	order := orderWithLine(t, productID, 1, "10")

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("RemoveLine", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectCommit(nil)
	f.cache.On("InvalidateCustomer", mock.Anything, order.CustomerID).Return(errors.New("redis down"))
	f.publisher.On("Publish", mock.Anything, domain.OrdersSubject, mock.Anything).Return(errors.New("nats down"))

	_, err := f.service.RemoveLine(context.Background(), order.ID, RemoveLineRequest{ProductID: productID})
	f.service.Wait()

	assert.NoError(t, err)
}

func TestService_CommitFailureSkipsSideEffects(t *testing.T) {
	f := newFixture()
	productID := uuid.New()
	order := orderWithLine(t, productID, 1, "10")
	dbErr := errors.New("connection reset")

	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("RemoveLine", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.expectCommit(dbErr)

	_, err := f.service.RemoveLine(context.Background(), order.ID, RemoveLineRequest{ProductID: productID})
	f.service.Wait()

	assert.ErrorIs(t, err, dbErr)
	f.cache.AssertNotCalled(t, "InvalidateCustomer", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListByCustomer_Empty(t *testing.T) {
	f := newFixture()
	customerID := uuid.New()

	f.orders.On("ListByCustomer", mock.Anything, customerID, domain.Page{Number: 1, Size: 10}).Return([]*domain.Order{}, nil)
	f.orders.On("CountByCustomer", mock.Anything, customerID).Return(int64(0), nil)

	orders, info, err := f.service.ListByCustomer(context.Background(), customerID, 1, 10)

	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 0, info.TotalPages)
}

func TestService_List(t *testing.T) {
	f := newFixture()
	orders := []*domain.Order{orderWithLine(t, uuid.New(), 2, "5"), domain.NewOrder(uuid.New())}

	f.orders.On("List", mock.Anything, domain.Page{Number: 2, Size: 2}).Return(orders, nil)
	f.orders.On("Count", mock.Anything).Return(int64(5), nil)

	items, info, err := f.service.List(context.Background(), 2, 2)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Total.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 3, info.TotalPages)
}

func TestService_GetByID_NotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()

	f.orders.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.service.GetByID(context.Background(), id)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// expectDelete stubs a successful delete of order
func (f *fixture) expectDelete(order *domain.Order) {
	f.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Delete", mock.Anything, order.ID).Return(nil)
	f.expectCommit(nil)
	f.cache.On("InvalidateCustomer", mock.Anything, order.CustomerID).Return(nil)
}

func TestService_PublishGivesUpAfterTimeout(t *testing.T) {
	// Setup
	f := newFixture()
	f.service.publishTimeout = 50 * time.Millisecond
	order := orderWithLine(t, uuid.New(), 1, "4.00")
	f.expectDelete(order)

	var hasDeadline bool
	f.publisher.On("Publish", mock.Anything, domain.OrdersSubject, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline = ctx.Deadline()
			<-ctx.Done()
		}).
		Return(context.DeadlineExceeded)

	// Execute
	require.NoError(t, f.service.Delete(context.Background(), order.ID))

	// Assert
	waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, f.service.WaitContext(waitCtx))
	assert.True(t, hasDeadline)
}

func TestService_WaitContext_StopsAtDeadline(t *testing.T) {
	f := newFixture()
	order := orderWithLine(t, uuid.New(), 1, "4.00")
	f.expectDelete(order)

	release := make(chan struct{})
	f.publisher.On("Publish", mock.Anything, domain.OrdersSubject, mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), order.ID))

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := f.service.WaitContext(waitCtx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	f.service.Wait()
}

func TestService_WaitContext_NothingPending(t *testing.T) {
	f := newFixture()

	assert.NoError(t, f.service.WaitContext(context.Background()))
}
