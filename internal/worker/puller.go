package worker

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

const (
	fetchBatch      = 10
	fetchWait       = 5 * time.Second
	fetchErrorPause = 5 * time.Second
)

// Fetcher is the part of a JetStream pull subscription the puller uses
type Fetcher interface {
	Fetch(batch int, opts ...nats.PullOpt) ([]*nats.Msg, error)
}

// Puller drains a pull subscription into a handler. Handled messages are
// acked; failures are nacked so JetStream redelivers them with backoff.
type Puller struct {
	sub     Fetcher
	handle  func(data []byte) error
	logger  *logger.Logger
	ack     func(msg *nats.Msg) error
	nak     func(msg *nats.Msg) error
	errWait time.Duration
}

// NewPuller creates a puller feeding handle
func NewPuller(sub Fetcher, handle func(data []byte) error, log *logger.Logger) *Puller {
	return &Puller{
		sub:     sub,
		handle:  handle,
		logger:  log,
		ack:     func(msg *nats.Msg) error { return msg.Ack() },
		nak:     func(msg *nats.Msg) error { return msg.Nak() },
		errWait: fetchErrorPause,
	}
}

// Run fetches in batches until ctx is cancelled
func (p *Puller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fetchCtx, cancel := context.WithTimeout(ctx, fetchWait)
		msgs, err := p.sub.Fetch(fetchBatch, nats.Context(fetchCtx))
		cancel()
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("Failed to fetch messages from JetStream", err)

			select {
			case <-time.After(p.errWait):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		for _, msg := range msgs {
			p.process(msg)
		}
	}
}

func (p *Puller) process(msg *nats.Msg) {
	if err := p.handle(msg.Data); err != nil {
		p.logger.Error("Failed to handle event", err)

		if nakErr := p.nak(msg); nakErr != nil {
			p.logger.Error("Failed to NACK message", nakErr)
		}
		return
	}

	if ackErr := p.ack(msg); ackErr != nil {
		p.logger.Error("Failed to ACK message", ackErr)
	}
}
