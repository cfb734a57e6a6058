package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

// jetStream is the part of nats.JetStreamContext the publisher needs
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// BreakerSettings tunes the circuit breaker guarding publishes
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings returns the settings used by the API
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Publisher publishes events to NATS JetStream behind a circuit breaker.
// While the breaker is open publishes fail fast with gobreaker.ErrOpenState.
type Publisher struct {
	nc      *nats.Conn
	js      jetStream
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewPublisher connects to NATS and creates a JetStream publisher
func NewPublisher(cfg *config.Config, log *logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"url": cfg.NATS.URL,
	}).Info("Connected to NATS JetStream")

	// Publishes fail without a stream bound to the subject
	if err := NewStreamConfig(js, SettingsFromConfig(cfg), log).EnsureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	p := newPublisher(js, DefaultBreakerSettings(), log)
	p.nc = nc
	return p, nil
}

func newPublisher(js jetStream, settings BreakerSettings, log *logger.Logger) *Publisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nats-publisher",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Publisher{
		js:      js,
		breaker: breaker,
		logger:  log,
	}
}

// Publish stores a message on a JetStream subject and waits for the ack
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.js.Publish(subject, data, nats.Context(ctx))
	})
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"subject": subject,
		}).Error("Failed to publish message to JetStream", err)
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}

	if pubAck, ok := result.(*nats.PubAck); ok && pubAck != nil {
		p.logger.WithFields(map[string]interface{}{
			"subject":  subject,
			"stream":   pubAck.Stream,
			"sequence": pubAck.Sequence,
		}).Debug("Published message to JetStream")
	}

	return nil
}

// State reports the breaker state
func (p *Publisher) State() gobreaker.State {
	return p.breaker.State()
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
