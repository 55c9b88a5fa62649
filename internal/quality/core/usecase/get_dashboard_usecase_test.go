package usecase_test

import (
	"context"
	"errors"
	"testing"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/ports"
	"event-quality-service/internal/quality/core/usecase"
)

func dashboardRows() []domain.EventRecord {
	d1, d2 := day(2025, 6, 1), day(2025, 6, 2)
	rows := []domain.EventRecord{
		rec("1", "purchase", d1, true),
		rec("2", "purchase", d2, false),
		rec("3", "page_view", d1, false),
		rec("4", "page_view", d2, true),
		rec("5", "page_view", d2, false),
		rec("6", "login", d2, false),
	}
	pages := []string{"/checkout", "/checkout", "/home", "/cart", "/home", "/home"}
	for i := range rows {
		rows[i].PageLocation = pages[i]
		rows[i].UserPseudoID = "u" + pages[i]
	}
	rows[0].MissingEventParams = []string{"currency"}
	rows[3].MissingEventParams = []string{"page_title"}
	return rows
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestDashboard_Success(t *testing.T) {
	store := &fakeStore{
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			if f.EventName != "" || f.ExpectedEventName != "" {
				t.Fatalf("dashboard must not filter by event, got %+v", f)
			}
			return dashboardRows(), nil
		},
	}
	s := settings()
	s.TopEvents = 2
	uc := usecase.NewGetDashboardUseCase(store, s)

	out, err := uc.Execute(context.Background(), june(1, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := out.Metrics
	if m.TotalEvents != 6 || m.ErrorEvents != 2 || m.GoodEvents != 4 || m.UniqueUsers != 3 || m.ErrorRate != 33.33 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if len(out.EventStats) != 2 || out.EventStats[0].Key != "page_view" || out.EventStats[1].Key != "purchase" {
		t.Fatalf("expected top 2 events by volume, got %+v", out.EventStats)
	}
	if len(out.Pages) != 2 || out.Pages[0].Key != "/cart" || out.Pages[1].Key != "/checkout" {
		t.Fatalf("expected only pages with errors by error rate, got %+v", out.Pages)
	}
	if len(out.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %+v", out.Parameters)
	}
	if out.Anomalies.TotalEvents != 5 || out.Anomalies.UniqueEventTypes != 3 {
		t.Fatalf("unexpected anomaly summary: %+v", out.Anomalies)
	}
	if len(out.Chart) != 3 || out.Chart[2].Total != 0 {
		t.Fatalf("unexpected chart: %+v", out.Chart)
	}
}

// ------------------------------------------------------------
// ATOMIC FAILURE
// ------------------------------------------------------------

func TestDashboard_InvalidRecordFailsWholeDashboard(t *testing.T) {
	store := &fakeStore{
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			rows := dashboardRows()
			rows[2].PrimaryKey = ""
			return rows, nil
		},
	}
	uc := usecase.NewGetDashboardUseCase(store, settings())

	out, err := uc.Execute(context.Background(), june(1, 3))
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected no partial dashboard")
	}
}

func TestDashboard_UpstreamFailure(t *testing.T) {
	store := &fakeStore{
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			return nil, errors.New("circuit breaker is open")
		},
	}
	uc := usecase.NewGetDashboardUseCase(store, settings())

	if _, err := uc.Execute(context.Background(), june(1, 3)); !errors.Is(err, domain.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
}

func TestDashboard_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &fakeStore{
		FetchRecordsFn: func(ctx context.Context, f ports.RecordFilter) ([]domain.EventRecord, error) {
			return dashboardRows(), nil
		},
	}
	uc := usecase.NewGetDashboardUseCase(store, settings())

	if _, err := uc.Execute(ctx, june(1, 3)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
