package ports

import (
	"context"

	"event-quality-service/internal/quality/core/domain"
)

// RecordFilter narrows a scan to one date range and, optionally, one event.
// Empty names mean no filter.
type RecordFilter struct {
	Range             domain.DateRange
	EventName         string // observed name
	ExpectedEventName string // tracking plan name
}

// EventRecordStore is the read side the reports are computed from. Rows may
// repeat a primary key; deduplication happens in the engine.
type EventRecordStore interface {
	FetchRecords(ctx context.Context, f RecordFilter) ([]domain.EventRecord, error)
	FetchDistinctEventNames(ctx context.Context, rng domain.DateRange) ([]string, error)
	// FetchDateBounds returns nil when the store holds no records.
	FetchDateBounds(ctx context.Context) (*domain.DateRange, error)
}
