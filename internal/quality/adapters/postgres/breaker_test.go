package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
)

type fakeStore struct {
	err   error
	calls int
}

func (f *fakeStore) FetchRecords(ctx context.Context, flt ports.RecordFilter) ([]domain.EventRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.EventRecord{{PrimaryKey: "a"}}, nil
}

func (f *fakeStore) FetchDistinctEventNames(ctx context.Context, rng domain.DateRange) ([]string, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeStore) FetchDateBounds(ctx context.Context) (*domain.DateRange, error) {
	f.calls++
	return nil, f.err
}

func testBreakerConfig() BreakerConfig {
	cfg := DefaultBreakerConfig()
	cfg.Name = "test-store"
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Hour
	return cfg
}

func TestBreakingStore_PassesThrough(t *testing.T) {
	next := &fakeStore{}
	store := NewBreakingStore(next, testBreakerConfig(), zap.NewNop())

	out, err := store.FetchRecords(context.Background(), ports.RecordFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].PrimaryKey != "a" {
		t.Fatalf("unexpected records: %+v", out)
	}

	bounds, err := store.FetchDateBounds(context.Background())
	if err != nil || bounds != nil {
		t.Fatalf("expected nil bounds without error, got %+v, %v", bounds, err)
	}
}

func TestBreakingStore_OpensAfterFailures(t *testing.T) {
	next := &fakeStore{err: errors.New("connection refused")}
	store := NewBreakingStore(next, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := store.FetchDistinctEventNames(context.Background(), domain.DateRange{}); err == nil {
			t.Fatalf("expected error on call %d", i+1)
		}
	}
	if store.State() != gobreaker.StateOpen {
		t.Fatalf("expected breaker to be open, got %s", store.State())
	}

	_, err := store.FetchRecords(context.Background(), ports.RecordFilter{})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState, got %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("open breaker must not reach the store, got %d calls", next.calls)
	}
}

func TestBreakingStore_CancellationDoesNotTrip(t *testing.T) {
	next := &fakeStore{err: context.Canceled}
	store := NewBreakingStore(next, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = store.FetchRecords(context.Background(), ports.RecordFilter{})
	}
	if store.State() != gobreaker.StateClosed {
		t.Fatalf("expected breaker to stay closed, got %s", store.State())
	}
}
