package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"event-quality-service/internal/platform/telemetry"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
)

type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "event-record-store",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakingStore fails fast while the wrapped store keeps failing. It never
// retries; an open breaker surfaces as an ordinary fetch error.
type BreakingStore struct {
	next ports.EventRecordStore
	cb   *gobreaker.CircuitBreaker[any]
}

var _ ports.EventRecordStore = (*BreakingStore)(nil)

func NewBreakingStore(next ports.EventRecordStore, cfg BreakerConfig, logger *zap.Logger) *BreakingStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	telemetry.BreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("event store breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			telemetry.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// a client going away says nothing about the store's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &BreakingStore{next: next, cb: cb}
}

func (s *BreakingStore) FetchRecords(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
	return execute(s.cb, func() ([]domain.EventRecord, error) {
		return s.next.FetchRecords(ctx, f)
	})
}

func (s *BreakingStore) FetchDistinctEventNames(ctx context.Context, rng domain.DateRange) ([]string, error) {
	return execute(s.cb, func() ([]string, error) {
		return s.next.FetchDistinctEventNames(ctx, rng)
	})
}

func (s *BreakingStore) FetchDateBounds(ctx context.Context) (*domain.DateRange, error) {
	return execute(s.cb, func() (*domain.DateRange, error) {
		return s.next.FetchDateBounds(ctx)
	})
}

func (s *BreakingStore) State() gobreaker.State {
	return s.cb.State()
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	var zero T
	result, err := cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("event store breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
