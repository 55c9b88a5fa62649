package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"event-quality-service/internal/platform/database"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/records/core/ports"
)

// rowsPerStatement keeps one INSERT well below the 65535 bind parameter limit.
const rowsPerStatement = 1000

const insertColumns = `
INSERT INTO event_records (
    primary_key,
    event_name,
    expected_event_name,
    event_date,
    event_timestamp,
    has_missing_params,
    missing_event_in_ga4,
    missing_event_params,
    missing_user_params,
    missing_item_params,
    missing_ecommerce_params,
    user_pseudo_id,
    session_id,
    device_category,
    device_operating_system,
    device_browser,
    page_location
) VALUES `

const columnsPerRow = 17

// DB is satisfied by *database.Pool.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type EventRecordRepository struct {
	db DB
}

func NewEventRecordRepository(db DB) *EventRecordRepository {
	return &EventRecordRepository{db: db}
}

var (
	_ ports.EventRecordWriter = (*EventRecordRepository)(nil)
	_ DB                      = (*database.Pool)(nil)
)

func (r *EventRecordRepository) InsertRecords(ctx context.Context, records []domain.EventRecord) (int64, error) {
	var stored int64
	for start := 0; start < len(records); start += rowsPerStatement {
		end := min(start+rowsPerStatement, len(records))

		query, args := buildInsert(records[start:end])
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return stored, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return stored, err
		}
		stored += n
	}
	return stored, nil
}

func buildInsert(records []domain.EventRecord) (string, []any) {
	var sb strings.Builder
	sb.WriteString(insertColumns)
	args := make([]any, 0, len(records)*columnsPerRow)

	for i, rec := range records {
		if i > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteString("(")
		for c := 0; c < columnsPerRow; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*columnsPerRow+c+1)
		}
		sb.WriteString(")")

		args = append(args,
			rec.PrimaryKey,
			nullable(rec.EventName),
			rec.ExpectedEventName,
			rec.EventDate,
			nullableTime(rec),
			rec.HasMissingParams,
			rec.MissingEventInGA4,
			pq.Array(orEmpty(rec.MissingEventParams)),
			pq.Array(orEmpty(rec.MissingUserParams)),
			pq.Array(orEmpty(rec.MissingItemParams)),
			pq.Array(orEmpty(rec.MissingEcommerceParams)),
			nullable(rec.UserPseudoID),
			nullable(rec.SessionID),
			nullable(rec.DeviceCategory),
			nullable(rec.DeviceOperatingSystem),
			nullable(rec.DeviceBrowser),
			nullable(rec.PageLocation),
		)
	}
	return sb.String(), args
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(rec domain.EventRecord) any {
	if rec.EventTimestamp.IsZero() {
		return nil
	}
	return rec.EventTimestamp
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
