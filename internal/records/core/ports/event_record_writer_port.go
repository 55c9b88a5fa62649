package ports

import (
	"context"

	"event-quality-service/internal/quality/core/domain"
)

type EventRecordWriter interface {
	// InsertRecords appends rows as given. Rows sharing a primary key are all
	// kept; reports collapse them.
	InsertRecords(ctx context.Context, records []domain.EventRecord) (stored int64, err error)
}
