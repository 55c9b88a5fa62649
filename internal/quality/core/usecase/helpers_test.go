package usecase_test

import (
	"context"
	"sync"
	"time"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
	"event-quality-service/internal/quality/core/usecase"
)

// fakeStore fakes EventRecordStore. Reports may call it from several goroutines.
type fakeStore struct {
	FetchRecordsFn func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error)
	FetchNamesFn   func(ctx context.Context, rng domain.DateRange) ([]string, error)
	FetchBoundsFn  func(ctx context.Context) (*domain.DateRange, error)

	mu         sync.Mutex
	lastFilter ports.RecordFilter
	called     bool
}

func (f *fakeStore) FetchRecords(ctx context.Context, flt ports.RecordFilter) ([]domain.EventRecord, error) {
	f.mu.Lock()
	f.called = true
	f.lastFilter = flt
	f.mu.Unlock()
	if f.FetchRecordsFn != nil {
		return f.FetchRecordsFn(ctx, flt)
	}
	return nil, nil
}

func (f *fakeStore) FetchDistinctEventNames(ctx context.Context, rng domain.DateRange) ([]string, error) {
	if f.FetchNamesFn != nil {
		return f.FetchNamesFn(ctx, rng)
	}
	return nil, nil
}

func (f *fakeStore) FetchDateBounds(ctx context.Context) (*domain.DateRange, error) {
	if f.FetchBoundsFn != nil {
		return f.FetchBoundsFn(ctx)
	}
	return nil, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func rec(pk, name string, date time.Time, missing bool) domain.EventRecord {
	return domain.EventRecord{
		PrimaryKey:        pk,
		EventName:         name,
		ExpectedEventName: name,
		EventDate:         date,
		EventTimestamp:    date.Add(10 * time.Hour),
		HasMissingParams:  missing,
	}
}

func settings() usecase.Settings {
	s := usecase.DefaultSettings()
	s.Clock = func() time.Time { return time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC) }
	return s
}

func june(from, to int) usecase.ReportInput {
	return usecase.ReportInput{Start: ptr(day(2025, 6, from)), End: ptr(day(2025, 6, to))}
}
