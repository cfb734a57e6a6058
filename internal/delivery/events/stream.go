package events

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

const (
	// StreamName is the work-queue stream holding order events
	StreamName = "ORDERS"

	// ConsumerName is the durable pull consumer of the report worker
	ConsumerName = "report-worker"
)

// StreamManager is the part of nats.JetStreamContext used to provision the
// order stream and its consumer
type StreamManager interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	ConsumerInfo(stream, name string, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
	AddConsumer(stream string, cfg *nats.ConsumerConfig, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
	UpdateConsumer(stream string, cfg *nats.ConsumerConfig, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
}

// StreamSettings tunes retention and redelivery of order events
type StreamSettings struct {
	MaxAge            time.Duration
	MaxDeliver        int
	AckWait           time.Duration
	RedeliveryBackoff time.Duration
}

// SettingsFromConfig reads the EVENTS_* settings
func SettingsFromConfig(cfg *config.Config) StreamSettings {
	return StreamSettings{
		MaxAge:            cfg.Events.StreamMaxAge,
		MaxDeliver:        cfg.Events.MaxDeliver,
		AckWait:           cfg.Events.AckWait,
		RedeliveryBackoff: cfg.Events.RedeliveryBackoff,
	}
}

// redeliveryDelays doubles RedeliveryBackoff for each redelivery. The first
// delivery is immediate, so there are MaxDeliver-1 delays.
func (s StreamSettings) redeliveryDelays() []time.Duration {
	if s.MaxDeliver <= 1 || s.RedeliveryBackoff <= 0 {
		return nil
	}

	delays := make([]time.Duration, s.MaxDeliver-1)
	for i := range delays {
		delays[i] = s.RedeliveryBackoff << i
	}
	return delays
}

func (s StreamSettings) consumerConfig() *nats.ConsumerConfig {
	return &nats.ConsumerConfig{
		Durable:       ConsumerName,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       s.AckWait,
		MaxDeliver:    s.MaxDeliver,
		FilterSubject: domain.OrdersSubject,
		BackOff:       s.redeliveryDelays(),
		Description:   "Report worker consumer refreshing customer revenue",
	}
}

// StreamConfig provisions the order stream and the report worker consumer
type StreamConfig struct {
	js       StreamManager
	settings StreamSettings
	logger   *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper
func NewStreamConfig(js StreamManager, settings StreamSettings, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:       js,
		settings: settings,
		logger:   log,
	}
}

// EnsureStream creates the order stream if missing. An existing stream is
// left as it is.
func (s *StreamConfig) EnsureStream() error {
	stream, err := s.js.StreamInfo(StreamName)
	if err == nil {
		s.logger.WithFields(map[string]any{
			"stream":   stream.Config.Name,
			"messages": stream.State.Msgs,
		}).Debug("Order stream present")
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	if _, err := s.js.AddStream(&nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{domain.OrdersSubject},
		Retention:   nats.WorkQueuePolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      s.settings.MaxAge,
		Discard:     nats.DiscardOld,
		Description: "Order events for revenue reports",
	}); err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"stream":  StreamName,
		"max_age": s.settings.MaxAge.String(),
	}).Info("Order stream created")
	return nil
}

// EnsureConsumer creates the report worker consumer, or updates it when its
// redelivery settings differ from the configured ones. A message that runs
// out of deliveries is dropped; the next event of the same customer repairs
// the cached summary.
func (s *StreamConfig) EnsureConsumer() error {
	want := s.settings.consumerConfig()

	info, err := s.js.ConsumerInfo(StreamName, ConsumerName)
	switch {
	case errors.Is(err, nats.ErrConsumerNotFound):
		if _, err := s.js.AddConsumer(StreamName, want); err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
		s.logger.WithFields(map[string]any{
			"consumer":    ConsumerName,
			"max_deliver": want.MaxDeliver,
		}).Info("Report worker consumer created")
		return nil
	case err != nil:
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	if sameRedelivery(info.Config, *want) {
		s.logger.WithFields(map[string]any{
			"consumer":    info.Name,
			"pending":     info.NumPending,
			"ack_pending": info.NumAckPending,
		}).Debug("Report worker consumer up to date")
		return nil
	}

	if _, err := s.js.UpdateConsumer(StreamName, want); err != nil {
		return fmt.Errorf("failed to update consumer: %w", err)
	}
	s.logger.WithFields(map[string]any{
		"consumer":    ConsumerName,
		"max_deliver": want.MaxDeliver,
		"ack_wait":    want.AckWait.String(),
	}).Info("Report worker consumer updated")
	return nil
}

func sameRedelivery(have, want nats.ConsumerConfig) bool {
	return have.MaxDeliver == want.MaxDeliver &&
		have.AckWait == want.AckWait &&
		slices.Equal(have.BackOff, want.BackOff)
}
