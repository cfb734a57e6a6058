package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

// countingRefresher records refreshes and fails the first failures calls
type countingRefresher struct {
	mu       sync.Mutex
	calls    map[uuid.UUID]int
	failures int
}

func newCountingRefresher(failures int) *countingRefresher {
	return &countingRefresher{calls: make(map[uuid.UUID]int), failures: failures}
}

func (r *countingRefresher) Refresh(ctx context.Context, customerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[customerID]++
	if r.failures > 0 {
		r.failures--
		return errors.New("database unavailable")
	}
	return nil
}

func (r *countingRefresher) count(customerID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[customerID]
}

func orderEvent(t *testing.T, customerID uuid.UUID, ts time.Time) []byte {
	t.Helper()
	order := domain.NewOrder(customerID)
	event := domain.NewOrderEvent(domain.EventOrderCreated, order)
	event.Timestamp = ts
	event.Total = decimal.Zero
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestReportWorker_HandleEvent_Success(t *testing.T) {
	// Setup
	refresher := newCountingRefresher(0)
	worker := NewReportWorker(refresher, logger.New("test"))
	customerID := uuid.New()

	// Execute
	err := worker.HandleEvent(orderEvent(t, customerID, time.Now()))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, worker.PendingCount())

	time.Sleep(debounceWindow + 100*time.Millisecond)

	assert.Equal(t, 0, worker.PendingCount())
	assert.Equal(t, 1, refresher.count(customerID))
}

func TestReportWorker_HandleEvent_InvalidJSON(t *testing.T) {
	worker := NewReportWorker(newCountingRefresher(0), logger.New("test"))

	err := worker.HandleEvent([]byte(`{invalid json}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestReportWorker_HandleEvent_MissingCustomer(t *testing.T) {
	worker := NewReportWorker(newCountingRefresher(0), logger.New("test"))

	err := worker.HandleEvent([]byte(`{"eventType":"order.created","orderId":"` + uuid.NewString() + `"}`))

	assert.Error(t, err)
	assert.Equal(t, 0, worker.PendingCount())
}

func TestReportWorker_Debouncing_MultipleEvents(t *testing.T) {
	refresher := newCountingRefresher(0)
	worker := NewReportWorker(refresher, logger.New("test"))
	customerID := uuid.New()

	for i := 0; i < 10; i++ {
		require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, time.Now())))
		time.Sleep(50 * time.Millisecond)
	}

	assert.Equal(t, 1, worker.PendingCount())

	time.Sleep(debounceWindow + 200*time.Millisecond)

	assert.Equal(t, 0, worker.PendingCount())
	assert.Equal(t, 1, refresher.count(customerID))
}

func TestReportWorker_IgnoresStaleEvents(t *testing.T) {
	refresher := newCountingRefresher(0)
	worker := NewReportWorker(refresher, logger.New("test"))
	customerID := uuid.New()
	now := time.Now()

	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, now)))
	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, now.Add(-time.Minute))))

	worker.mu.Lock()
	pending := worker.pendingUpdates[customerID]
	worker.mu.Unlock()
	require.NotNil(t, pending)
	assert.True(t, pending.timestamp.Equal(now))

	time.Sleep(debounceWindow + 100*time.Millisecond)
	assert.Equal(t, 1, refresher.count(customerID))
}

func TestReportWorker_SeparateCustomers(t *testing.T) {
	refresher := newCountingRefresher(0)
	worker := NewReportWorker(refresher, logger.New("test"))
	first, second := uuid.New(), uuid.New()

	require.NoError(t, worker.HandleEvent(orderEvent(t, first, time.Now())))
	require.NoError(t, worker.HandleEvent(orderEvent(t, second, time.Now())))
	assert.Equal(t, 2, worker.PendingCount())

	time.Sleep(debounceWindow + 100*time.Millisecond)

	assert.Equal(t, 1, refresher.count(first))
	assert.Equal(t, 1, refresher.count(second))
}

func TestReportWorker_RetriesWithBackoff(t *testing.T) {
	refresher := newCountingRefresher(2)
	worker := NewReportWorker(refresher, logger.New("test"))
	customerID := uuid.New()

	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, time.Now())))

	// 100ms + 200ms of backoff after the debounce window
	time.Sleep(debounceWindow + 500*time.Millisecond)

	assert.Equal(t, 3, refresher.count(customerID))
}

func TestReportWorker_Shutdown_CancelsPending(t *testing.T) {
	refresher := newCountingRefresher(0)
	worker := NewReportWorker(refresher, logger.New("test"))
	customerID := uuid.New()

	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, time.Now())))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, worker.Shutdown(ctx))
	assert.Equal(t, 0, worker.PendingCount())

	// Events after shutdown are dropped
	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, time.Now())))
	assert.Equal(t, 0, worker.PendingCount())

	time.Sleep(debounceWindow + 100*time.Millisecond)
	assert.Equal(t, 0, refresher.count(customerID))
}

func TestReportWorker_Options(t *testing.T) {
	// Setup
	refresher := newCountingRefresher(4)
	worker := NewReportWorker(refresher, logger.New("test"),
		WithDebounce(50*time.Millisecond),
		WithRetries(5, 10*time.Millisecond),
	)
	customerID := uuid.New()

	// Execute
	require.NoError(t, worker.HandleEvent(orderEvent(t, customerID, time.Now())))

	// Assert: 50ms debounce plus 10+20+40+80ms of backoff
	assert.Eventually(t, func() bool {
		return refresher.count(customerID) == 5
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, 0, worker.PendingCount())
}

func TestReportWorker_Options_IgnoreNonPositive(t *testing.T) {
	worker := NewReportWorker(newCountingRefresher(0), logger.New("test"),
		WithDebounce(0),
		WithRetries(-1, 0),
	)

	assert.Equal(t, debounceWindow, worker.debounce)
	assert.Equal(t, maxRetries, worker.maxRetries)
	assert.Equal(t, initialBackoff, worker.backoff)
}
