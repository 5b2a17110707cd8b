package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures BreakerGateway.
type BreakerSettings struct {
	// FailureThreshold is the number of consecutive acquire failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

// BreakerGateway fails Acquire fast while the wrapped gateway keeps failing.
// It never retries; a failed acquire fails the request.
type BreakerGateway struct {
	Gateway
	cb *gobreaker.CircuitBreaker[Conn]
}

// NewBreakerGateway wraps next with a circuit breaker on connection acquisition.
func NewBreakerGateway(next Gateway, s BreakerSettings) *BreakerGateway {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	st := gobreaker.Settings{
		Name:        "data-store",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about the store
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerGateway{Gateway: next, cb: gobreaker.NewCircuitBreaker[Conn](st)}
}

// Ensure BreakerGateway implements Gateway at compile time.
var _ Gateway = (*BreakerGateway)(nil)

func (g *BreakerGateway) Acquire(ctx context.Context) (Conn, error) {
	conn, err := g.cb.Execute(func() (Conn, error) {
		return g.Gateway.Acquire(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return conn, err
}

// State reports the current breaker state.
func (g *BreakerGateway) State() gobreaker.State {
	return g.cb.State()
}
