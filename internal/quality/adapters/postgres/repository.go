package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"event-quality-service/internal/platform/database"
	"event-quality-service/internal/platform/telemetry"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
)

type RowScanner = database.Rows

// DB is satisfied by *database.Pool.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// EventRecordRepository reads event_records. Rows that do not form a valid
// record are logged, counted and skipped; they never reach the engine.
type EventRecordRepository struct {
	db     DB
	logger *zap.Logger
}

func NewEventRecordRepository(db DB, logger *zap.Logger) *EventRecordRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRecordRepository{db: db, logger: logger}
}

var (
	_ ports.EventRecordStore = (*EventRecordRepository)(nil)
	_ DB                     = (*database.Pool)(nil)
)

const selectRecordsSQL = `
SELECT
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
FROM event_records
WHERE `

func (r *EventRecordRepository) FetchRecords(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
	where := "event_date BETWEEN $1 AND $2"
	args := []any{f.Range.Start, f.Range.End}
	argIndex := 3

	if f.EventName != "" {
		where += fmt.Sprintf(" AND event_name = $%d", argIndex)
		args = append(args, f.EventName)
		argIndex++
	}
	if f.ExpectedEventName != "" {
		where += fmt.Sprintf(" AND COALESCE(NULLIF(expected_event_name, ''), event_name) = $%d", argIndex)
		args = append(args, f.ExpectedEventName)
	}

	rows, err := r.db.QueryContext(ctx, selectRecordsSQL+where+"\nORDER BY primary_key", args...)
	if err != nil {
		return nil, r.fetchFailed("records", err)
	}
	defer rows.Close()

	var out []domain.EventRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, r.fetchFailed("records", err)
		}

		rec = domain.NormalizeRecord(rec)
		if err := domain.ValidateRecord(rec); err != nil {
			r.drop(rec, err)
			continue
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fetchFailed("records", err)
	}

	return out, nil
}

func scanRecord(rows RowScanner) (domain.EventRecord, error) {
	var (
		rec                             domain.EventRecord
		eventName, expectedName         sql.NullString
		eventDate                       sql.NullTime
		eventTimestamp                  sql.NullTime
		missingEvent, missingUser       pq.StringArray
		missingItem, missingEcommerce   pq.StringArray
		userID, sessionID, category     sql.NullString
		operatingSystem, browser, pages sql.NullString
	)

	err := rows.Scan(
		&rec.PrimaryKey,
		&eventName,
		&expectedName,
		&eventDate,
		&eventTimestamp,
		&rec.HasMissingParams,
		&rec.MissingEventInGA4,
		&missingEvent,
		&missingUser,
		&missingItem,
		&missingEcommerce,
		&userID,
		&sessionID,
		&category,
		&operatingSystem,
		&browser,
		&pages,
	)
	if err != nil {
		return domain.EventRecord{}, err
	}

	rec.EventName = eventName.String
	rec.ExpectedEventName = expectedName.String
	rec.EventDate = eventDate.Time
	rec.EventTimestamp = eventTimestamp.Time
	rec.MissingEventParams = missingEvent
	rec.MissingUserParams = missingUser
	rec.MissingItemParams = missingItem
	rec.MissingEcommerceParams = missingEcommerce
	rec.UserPseudoID = userID.String
	rec.SessionID = sessionID.String
	rec.DeviceCategory = category.String
	rec.DeviceOperatingSystem = operatingSystem.String
	rec.DeviceBrowser = browser.String
	rec.PageLocation = pages.String
	return rec, nil
}

const selectEventNamesSQL = `
SELECT DISTINCT event_name
FROM event_records
WHERE event_date BETWEEN $1 AND $2
  AND event_name IS NOT NULL
  AND event_name <> ''
ORDER BY event_name`

func (r *EventRecordRepository) FetchDistinctEventNames(ctx context.Context, rng domain.DateRange) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectEventNamesSQL, rng.Start, rng.End)
	if err != nil {
		return nil, r.fetchFailed("event_names", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, r.fetchFailed("event_names", err)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, r.fetchFailed("event_names", err)
	}
	return names, nil
}

const selectDateBoundsSQL = `
SELECT MIN(event_date), MAX(event_date)
FROM event_records`

func (r *EventRecordRepository) FetchDateBounds(ctx context.Context) (*domain.DateRange, error) {
	rows, err := r.db.QueryContext(ctx, selectDateBoundsSQL)
	if err != nil {
		return nil, r.fetchFailed("date_bounds", err)
	}
	defer rows.Close()

	var minDate, maxDate sql.NullTime
	if rows.Next() {
		if err := rows.Scan(&minDate, &maxDate); err != nil {
			return nil, r.fetchFailed("date_bounds", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, r.fetchFailed("date_bounds", err)
	}

	if !minDate.Valid || !maxDate.Valid {
		return nil, nil
	}
	rng, err := domain.NewDateRange(minDate.Time, maxDate.Time)
	if err != nil {
		return nil, err
	}
	return &rng, nil
}

func (r *EventRecordRepository) drop(rec domain.EventRecord, err error) {
	reason := "invalid"
	if rec.PrimaryKey == "" {
		reason = "missing_primary_key"
	} else if rec.EventDate.IsZero() {
		reason = "missing_event_date"
	}
	telemetry.RecordsDropped.WithLabelValues(reason).Inc()
	r.logger.Warn("dropping invalid event record",
		zap.String("primary_key", rec.PrimaryKey),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// fetchFailed counts a failed read. Cancellation is the caller giving up, not
// the store failing.
func (r *EventRecordRepository) fetchFailed(op string, err error) error {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		telemetry.StoreFetchErrors.WithLabelValues(op).Inc()
		r.logger.Error("event store read failed", zap.String("operation", op), zap.Error(err))
	}
	return err
}
