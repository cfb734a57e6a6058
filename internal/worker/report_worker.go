package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

const (
	// Debounce window - collect events for same customer within this duration
	debounceWindow = 1 * time.Second

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond

	attemptTimeout = 5 * time.Second
)

// Option tunes a ReportWorker
type Option func(*ReportWorker)

// WithDebounce sets how long events for one customer are collected before a
// refresh runs. Non-positive values keep the default.
func WithDebounce(window time.Duration) Option {
	return func(w *ReportWorker) {
		if window > 0 {
			w.debounce = window
		}
	}
}

// WithRetries sets the refresh attempt count and the first backoff delay,
// which doubles after every failed attempt
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(w *ReportWorker) {
		if attempts > 0 {
			w.maxRetries = attempts
		}
		if backoff > 0 {
			w.backoff = backoff
		}
	}
}

// Refresher recomputes one customer's cached revenue
type Refresher interface {
	Refresh(ctx context.Context, customerID uuid.UUID) error
}

// ReportWorker consumes order events and refreshes the revenue summary of
// the affected customer, at most once per debounce window
type ReportWorker struct {
	refresher  Refresher
	logger     *logger.Logger
	debounce   time.Duration
	maxRetries int
	backoff    time.Duration

	mu             sync.Mutex
	pendingUpdates map[uuid.UUID]*pendingUpdate
	shutdownCh     chan struct{}
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

type pendingUpdate struct {
	timestamp time.Time
	timer     *time.Timer
}

// NewReportWorker creates a new report worker
func NewReportWorker(refresher Refresher, log *logger.Logger, opts ...Option) *ReportWorker {
	ctx, cancel := context.WithCancel(context.Background())

	w := &ReportWorker{
		refresher:      refresher,
		logger:         log,
		debounce:       debounceWindow,
		maxRetries:     maxRetries,
		backoff:        initialBackoff,
		pendingUpdates: make(map[uuid.UUID]*pendingUpdate),
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// HandleEvent decodes an order event and schedules a refresh for its customer
func (w *ReportWorker) HandleEvent(data []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal order event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.CustomerID == uuid.Nil {
		return fmt.Errorf("order event %s has no customer", event.OrderID)
	}

	w.logger.WithFields(map[string]any{
		"event_type":  event.EventType,
		"order_id":    event.OrderID.String(),
		"customer_id": event.CustomerID.String(),
		"timestamp":   event.Timestamp,
	}).Info("Received order event")

	w.scheduleUpdate(event.CustomerID, event.Timestamp)

	return nil
}

// scheduleUpdate coalesces events of one customer into a single refresh.
// Events older than the pending one are dropped.
func (w *ReportWorker) scheduleUpdate(customerID uuid.UUID, timestamp time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	existing, found := w.pendingUpdates[customerID]
	if found {
		if timestamp.Before(existing.timestamp) {
			w.logger.WithFields(map[string]any{
				"customer_id": customerID.String(),
				"existing_ts": existing.timestamp,
				"event_ts":    timestamp,
			}).Debug("Ignoring stale event")
			return
		}

		// A timer that already fired owns its wg slot; the new one needs its own.
		if !existing.timer.Stop() {
			w.wg.Add(1)
		}
		w.logger.WithFields(map[string]any{
			"customer_id": customerID.String(),
		}).Debug("Debouncing: resetting timer for customer")
	} else {
		w.wg.Add(1)
	}

	update := &pendingUpdate{timestamp: timestamp}
	update.timer = time.AfterFunc(w.debounce, func() {
		w.processUpdate(customerID, update)
	})
	w.pendingUpdates[customerID] = update
}

// processUpdate runs the refresh with retries and exponential backoff
func (w *ReportWorker) processUpdate(customerID uuid.UUID, update *pendingUpdate) {
	defer w.wg.Done()

	w.mu.Lock()
	if w.pendingUpdates[customerID] == update {
		delete(w.pendingUpdates, customerID)
	}
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"customer_id": customerID.String(),
	}).Info("Processing revenue refresh")

	var lastErr error
	backoff := w.backoff

	for attempt := 0; attempt < w.maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"customer_id": customerID.String(),
				"attempt":     attempt + 1,
				"backoff_ms":  backoff.Milliseconds(),
			}).Warn("Retrying revenue refresh")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, attemptTimeout)
		err := w.refresher.Refresh(ctx, customerID)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]any{
			"customer_id": customerID.String(),
			"attempt":     attempt + 1,
		}).Error("Failed to refresh revenue", err)
	}

	w.logger.WithFields(map[string]any{
		"customer_id": customerID.String(),
		"max_retries": w.maxRetries,
	}).Error("Revenue refresh failed after all retries", lastErr)
}

// Shutdown stops accepting events, cancels pending timers and waits for
// in-flight refreshes until ctx expires
func (w *ReportWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down report worker...")

	w.mu.Lock()
	close(w.shutdownCh)
	cancelled := 0
	for _, update := range w.pendingUpdates {
		if update.timer.Stop() {
			w.wg.Done()
			cancelled++
		}
	}
	w.pendingUpdates = make(map[uuid.UUID]*pendingUpdate)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": cancelled,
	}).Info("Cancelled pending updates")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.cancel()
		w.logger.Info("All in-flight updates completed")
		return nil
	case <-ctx.Done():
		w.cancel()
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// PendingCount returns the number of debounced refreshes not yet started
func (w *ReportWorker) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pendingUpdates)
}
