package usecase_test

import (
	"context"
	"errors"
	"testing"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
	"event-quality-service/internal/quality/core/usecase"
)

func TestScope_FallsBackToClock(t *testing.T) {
	store := &fakeStore{}
	uc := usecase.NewGetParameterReportUseCase(store, settings())

	out, err := uc.Execute(context.Background(), usecase.ReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Range.Start.Equal(day(2025, 6, 1)) || !out.Range.End.Equal(day(2025, 6, 30)) {
		t.Fatalf("expected the 30 days ending today, got %+v", out.Range)
	}
}

func TestScope_UsesStoreBounds(t *testing.T) {
	bounds := domain.DateRange{Start: day(2025, 3, 1), End: day(2025, 3, 9)}
	store := &fakeStore{
		FetchBoundsFn: func(ctx context.Context) (*domain.DateRange, error) { return &bounds, nil },
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			if f.Range != bounds {
				t.Fatalf("expected store bounds, got %+v", f.Range)
			}
			return nil, nil
		},
	}
	uc := usecase.NewGetParameterReportUseCase(store, settings())

	out, err := uc.Execute(context.Background(), usecase.ReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Range != bounds {
		t.Fatalf("unexpected range: %+v", out.Range)
	}
}

func TestScope_BoundsFailure(t *testing.T) {
	store := &fakeStore{
		FetchBoundsFn: func(ctx context.Context) (*domain.DateRange, error) { return nil, errors.New("boom") },
	}
	uc := usecase.NewGetParameterReportUseCase(store, settings())

	if _, err := uc.Execute(context.Background(), usecase.ReportInput{}); !errors.Is(err, domain.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
	if store.called {
		t.Fatalf("FetchRecords must not run after a failed scope")
	}
}

// ------------------------------------------------------------
// PARAMETER REPORT
// ------------------------------------------------------------

func TestParameterReport_Limit(t *testing.T) {
	d := day(2025, 6, 1)
	store := &fakeStore{
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			a := rec("a", "purchase", d, true)
			a.MissingEventParams = []string{"currency", "value"}
			a.MissingUserParams = []string{"user_tier"}
			b := rec("b", "purchase", d, true)
			b.MissingEventParams = []string{"currency"}
			return []domain.EventRecord{a, b, rec("c", "purchase", d, false)}, nil
		},
	}
	uc := usecase.NewGetParameterReportUseCase(store, settings())

	in := june(1, 1)
	in.Limit = 2
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalEvents != 3 || len(out.Parameters) != 2 {
		t.Fatalf("unexpected report: %+v", out)
	}
	if out.Parameters[0].Key != "currency" || out.Parameters[0].WithErrors != 2 {
		t.Fatalf("expected currency first, got %+v", out.Parameters[0])
	}
	if out.Parameters[0].Tier != domain.TierCritical {
		t.Fatalf("expected 66.67%% to be Critical, got %s", out.Parameters[0].Tier)
	}
}

func TestParameterReport_EventFilter(t *testing.T) {
	store := &fakeStore{}
	uc := usecase.NewGetParameterReportUseCase(store, settings())

	in := june(1, 2)
	in.EventName = " purchase "
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.ExpectedEventName != "purchase" || store.lastFilter.EventName != "" {
		t.Fatalf("unexpected filter: %+v", store.lastFilter)
	}
	if out.EventName != "purchase" {
		t.Fatalf("expected the filter on the report, got %q", out.EventName)
	}

	in.EventName = "all"
	out, err = uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.EventName != "" || store.lastFilter.ExpectedEventName != "" {
		t.Fatalf("expected no filter for all, got %q / %+v", out.EventName, store.lastFilter)
	}
}

func TestParameterReport_LimitAboveMax(t *testing.T) {
	uc := usecase.NewGetParameterReportUseCase(&fakeStore{}, settings())
	in := june(1, 1)
	in.Limit = 1000
	if _, err := uc.Execute(context.Background(), in); !errors.Is(err, usecase.ErrInvalidReportQuery) {
		t.Fatalf("expected ErrInvalidReportQuery, got %v", err)
	}
}

func TestScope_RangeTooWide(t *testing.T) {
	store := &fakeStore{}
	uc := usecase.NewGetTrackingReportUseCase(store, settings())

	in := usecase.ReportInput{
		Start: ptr(day(1, 1, 1)),
		End:   ptr(day(9999, 12, 31)),
	}
	if _, err := uc.Execute(context.Background(), in); !errors.Is(err, usecase.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if store.called {
		t.Fatalf("FetchRecords must not run for a rejected range")
	}
}

func TestScope_MaxRangeIsInclusive(t *testing.T) {
	s := settings()
	s.MaxRangeDays = 30
	uc := usecase.NewGetTrackingReportUseCase(&fakeStore{}, s)

	out, err := uc.Execute(context.Background(), june(1, 30))
	if err != nil {
		t.Fatalf("unexpected error for exactly 30 days: %v", err)
	}
	if len(out.Chart) != 30 {
		t.Fatalf("expected 30 chart points, got %d", len(out.Chart))
	}

	in := usecase.ReportInput{Start: ptr(day(2025, 5, 31)), End: ptr(day(2025, 6, 30))}
	if _, err := uc.Execute(context.Background(), in); !errors.Is(err, usecase.ErrInvalidTimeRange) {
		t.Fatalf("expected 31 days to be rejected, got %v", err)
	}
}

func TestScope_WideStoreBoundsKeepRecentDays(t *testing.T) {
	s := settings()
	s.MaxRangeDays = 10
	store := &fakeStore{
		FetchBoundsFn: func(ctx context.Context) (*domain.DateRange, error) {
			return &domain.DateRange{Start: day(2020, 1, 1), End: day(2025, 6, 20)}, nil
		},
	}
	uc := usecase.NewGetParameterReportUseCase(store, s)

	out, err := uc.Execute(context.Background(), usecase.ReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Range.Start.Equal(day(2025, 6, 11)) || !out.Range.End.Equal(day(2025, 6, 20)) {
		t.Fatalf("expected the last 10 days of the store, got %+v", out.Range)
	}
}
