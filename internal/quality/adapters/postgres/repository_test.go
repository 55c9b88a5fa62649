package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"event-quality-service/internal/platform/telemetry"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
)

// fakeRowScanner implements RowScanner for tests. Values must have the exact
// type of the scan destination.
type fakeRowScanner struct {
	rows []fakeRow
	i    int
	err  error
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		target := reflect.ValueOf(dest[i]).Elem()
		value := reflect.ValueOf(row.values[i])
		if value.Type() != target.Type() {
			return fmt.Errorf("column %d: cannot scan %s into %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &fakeRowScanner{}, nil
}

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func at(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func recordRow(pk, name string, date time.Time, missing []string) fakeRow {
	return fakeRow{values: []any{
		pk,
		str(name),
		str(""),
		at(date),
		at(date.Add(9 * time.Hour)),
		len(missing) > 0,
		false,
		pq.StringArray(missing),
		pq.StringArray(nil),
		pq.StringArray(nil),
		pq.StringArray(nil),
		str("user-1"),
		str("session-1"),
		str("desktop"),
		str("macOS"),
		str("Chrome"),
		str("/checkout"),
	}}
}

var june1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// ------------------------------------------------------------
// FETCH RECORDS
// ------------------------------------------------------------

func TestFetchRecords_Success(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{
				recordRow(" abc ", "purchase", june1.Add(3*time.Hour), []string{"value", "currency", "value", ""}),
				recordRow("def", "page_view", june1, nil),
			}}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	out, err := repo.FetchRecords(context.Background(), ports.RecordFilter{
		Range: domain.DateRange{Start: june1, End: june1.AddDate(0, 0, 6)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	first := out[0]
	if first.PrimaryKey != "abc" || first.ExpectedEventName != "purchase" || !first.HasMissingParams {
		t.Fatalf("unexpected normalized record: %+v", first)
	}
	if !first.EventDate.Equal(june1) {
		t.Fatalf("expected event date at midnight, got %s", first.EventDate)
	}
	if !reflect.DeepEqual(first.MissingEventParams, []string{"currency", "value"}) {
		t.Fatalf("expected parameter set, got %v", first.MissingEventParams)
	}
	if first.PageLocation != "/checkout" || first.DeviceBrowser != "Chrome" {
		t.Fatalf("dimensions were not passed through: %+v", first)
	}

	if !strings.Contains(db.lastQuery, "FROM event_records") || strings.Contains(db.lastQuery, "event_name = $3") {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 2 {
		t.Fatalf("expected 2 args, got %d", len(db.lastArgs))
	}
}

func TestFetchRecords_Filters(t *testing.T) {
	db := &fakeDB{}
	repo := NewEventRecordRepository(db, nil)

	_, err := repo.FetchRecords(context.Background(), ports.RecordFilter{
		Range:             domain.DateRange{Start: june1, End: june1},
		EventName:         "purchase",
		ExpectedEventName: "purchase_v2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "event_name = $3") || !strings.Contains(db.lastQuery, "event_name) = $4") {
		t.Fatalf("expected both filters in query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 4 || db.lastArgs[3] != "purchase_v2" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
}

func TestFetchRecords_DropsInvalidRows(t *testing.T) {
	before := testutil.ToFloat64(telemetry.RecordsDropped.WithLabelValues("missing_primary_key"))

	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{
				recordRow("", "purchase", june1, nil),
				recordRow("ok", "purchase", june1, nil),
			}}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	out, err := repo.FetchRecords(context.Background(), ports.RecordFilter{Range: domain.DateRange{Start: june1, End: june1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].PrimaryKey != "ok" {
		t.Fatalf("expected only the valid row, got %+v", out)
	}

	after := testutil.ToFloat64(telemetry.RecordsDropped.WithLabelValues("missing_primary_key"))
	if after-before != 1 {
		t.Fatalf("expected dropped counter to grow by 1, got %v", after-before)
	}
}

func TestFetchRecords_QueryError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("pq: relation does not exist")
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	if _, err := repo.FetchRecords(context.Background(), ports.RecordFilter{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestFetchRecords_RowsError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{err: errors.New("connection reset")}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	if _, err := repo.FetchRecords(context.Background(), ports.RecordFilter{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// ------------------------------------------------------------
// EVENT NAMES / DATE BOUNDS
// ------------------------------------------------------------

func TestFetchDistinctEventNames(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "SELECT DISTINCT event_name") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeRowScanner{rows: []fakeRow{
				{values: []any{"login"}},
				{values: []any{" "}},
				{values: []any{"purchase"}},
			}}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	names, err := repo.FetchDistinctEventNames(context.Background(), domain.DateRange{Start: june1, End: june1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"login", "purchase"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestFetchDateBounds_Empty(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{sql.NullTime{}, sql.NullTime{}}}}}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	bounds, err := repo.FetchDateBounds(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bounds != nil {
		t.Fatalf("expected nil bounds for an empty table, got %+v", bounds)
	}
}

func TestFetchDateBounds(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{at(june1), at(june1.AddDate(0, 0, 9))}}}}, nil
		},
	}
	repo := NewEventRecordRepository(db, zap.NewNop())

	bounds, err := repo.FetchDateBounds(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bounds == nil || bounds.Days() != 10 {
		t.Fatalf("unexpected bounds: %+v", bounds)
	}
}
