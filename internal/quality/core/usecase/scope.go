package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/engine"
	"event-quality-service/internal/quality/core/ports"
)

var (
	ErrInvalidReportQuery = errors.New("invalid report query")
	ErrInvalidTimeRange   = errors.New("invalid time range")
)

// allEvents is the sentinel the dashboard sends for "no event filter".
const allEvents = "all"

// ReportInput is what a caller may ask of any report. Zero values select the
// configured defaults.
type ReportInput struct {
	Start     *time.Time
	End       *time.Time
	EventName string

	Page       int
	PageSize   int
	ErrorsOnly bool
	Limit      int
}

// resolveQuery validates in and turns it into an explicit QueryContext.
// The range comes from the request, else from the store's bounds, else from
// the last FallbackLookbackDays ending today. Store bounds wider than
// MaxRangeDays keep their most recent days; a wider request is rejected.
func resolveQuery(ctx context.Context, store ports.EventRecordStore, s Settings, in ReportInput) (domain.QueryContext, error) {
	if (in.Start == nil) != (in.End == nil) {
		return domain.QueryContext{}, fmt.Errorf("%w: start and end must be given together", ErrInvalidTimeRange)
	}
	if in.Page < 0 || in.PageSize < 0 || in.Limit < 0 {
		return domain.QueryContext{}, fmt.Errorf("%w: page, pageSize and limit must not be negative", ErrInvalidReportQuery)
	}
	if in.PageSize > s.MaxPageSize {
		return domain.QueryContext{}, fmt.Errorf("%w: pageSize must be at most %d", ErrInvalidReportQuery, s.MaxPageSize)
	}
	if in.Limit > s.MaxTopParameters {
		return domain.QueryContext{}, fmt.Errorf("%w: limit must be at most %d", ErrInvalidReportQuery, s.MaxTopParameters)
	}

	rng, err := resolveRange(ctx, store, s, in)
	if err != nil {
		return domain.QueryContext{}, err
	}

	q := domain.QueryContext{
		Range:         rng,
		Page:          in.Page,
		PageSize:      in.PageSize,
		Thresholds:    s.Thresholds,
		TopParameters: s.TopParameters,
		TopEvents:     s.TopEvents,
		TopPages:      s.TopPages,
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = s.DefaultPageSize
	}
	if in.Limit > 0 {
		q.TopParameters = in.Limit
	}
	return q, nil
}

func resolveRange(ctx context.Context, store ports.EventRecordStore, s Settings, in ReportInput) (domain.DateRange, error) {
	if in.Start != nil {
		rng, err := domain.NewDateRange(*in.Start, *in.End)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: end is before start", ErrInvalidTimeRange)
		}
		if spansMoreThan(rng, s.MaxRangeDays) {
			return domain.DateRange{}, fmt.Errorf("%w: range must cover at most %d days", ErrInvalidTimeRange, s.MaxRangeDays)
		}
		return rng, nil
	}

	bounds, err := store.FetchDateBounds(ctx)
	if err != nil {
		return domain.DateRange{}, upstream(err)
	}
	if bounds != nil {
		if spansMoreThan(*bounds, s.MaxRangeDays) {
			return lastDays(bounds.End, s.MaxRangeDays), nil
		}
		return *bounds, nil
	}

	return lastDays(domain.Day(s.Clock()), min(s.FallbackLookbackDays, s.MaxRangeDays)), nil
}

// spansMoreThan reports whether rng covers more than days calendar days.
func spansMoreThan(rng domain.DateRange, days int) bool {
	return rng.Start.AddDate(0, 0, days-1).Before(rng.End)
}

// lastDays is the range of n days ending on end.
func lastDays(end time.Time, n int) domain.DateRange {
	end = domain.Day(end)
	return domain.DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// eventFilter maps the "all" sentinel and blanks to no filter.
func eventFilter(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, allEvents) {
		return ""
	}
	return name
}

// fetchDeduplicated runs the single scan of a report and collapses duplicates.
func fetchDeduplicated(ctx context.Context, store ports.EventRecordStore, f ports.RecordFilter) ([]domain.EventRecord, error) {
	rows, err := store.FetchRecords(ctx, f)
	if err != nil {
		return nil, upstream(err)
	}
	return engine.Deduplicate(ctx, rows)
}

// upstream marks a store failure. Cancellation keeps its own identity so the
// caller can tell a client abort from a broken store.
func upstream(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamFetch, err)
}
