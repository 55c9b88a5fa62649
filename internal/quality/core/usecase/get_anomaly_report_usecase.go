package usecase

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/engine"
	"event-quality-service/internal/quality/core/ports"
)

type GetAnomalyReportUseCase struct {
	store    ports.EventRecordStore
	settings Settings
}

func NewGetAnomalyReportUseCase(store ports.EventRecordStore, s Settings) *GetAnomalyReportUseCase {
	return &GetAnomalyReportUseCase{store: store, settings: s.withDefaults()}
}

// Execute scores every (day, event) volume of the scope against the same
// event's own distribution within the scope.
func (uc *GetAnomalyReportUseCase) Execute(ctx context.Context, in ReportInput) (*domain.AnomalyReport, error) {
	started := time.Now()

	detector, err := engine.NewDetector(uc.settings.Thresholds)
	if err != nil {
		return nil, err
	}

	q, err := resolveQuery(ctx, uc.store, uc.settings, in)
	if err != nil {
		return nil, err
	}
	q.EventName = eventFilter(in.EventName)

	var (
		records []domain.EventRecord
		names   []string
	)

	fetch, fctx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		var err error
		records, err = fetchDeduplicated(fctx, uc.store, ports.RecordFilter{Range: q.Range, EventName: q.EventName})
		return err
	})
	fetch.Go(func() error {
		var err error
		names, err = uc.store.FetchDistinctEventNames(fctx, q.Range)
		if err != nil {
			return upstream(err)
		}
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	counts, err := engine.DailyCounts(ctx, records)
	if err != nil {
		return nil, err
	}
	samples, err := detector.Detect(ctx, counts)
	if err != nil {
		return nil, err
	}

	chart, err := engine.CompleteAnomalySeries(engine.AnomalySeries(samples), q.Range)
	if err != nil {
		return nil, err
	}

	display := slices.Clone(samples)
	engine.SortSamplesForDisplay(display)
	page, err := engine.PlanPage(len(display), q.Page, q.PageSize)
	if err != nil {
		return nil, err
	}

	names = slices.Compact(slices.Sorted(slices.Values(names)))
	if names == nil {
		names = []string{}
	}

	uc.settings.Logger.Debug("anomaly report built",
		zap.String("event", q.EventName),
		zap.Int("samples", len(samples)),
		zap.Duration("took", time.Since(started)),
	)

	return &domain.AnomalyReport{
		Range:           q.Range,
		EventName:       q.EventName,
		Samples:         engine.Paginate(display, page),
		Chart:           chart,
		AvailableEvents: names,
		Stats:           engine.SummarizeAnomalies(samples),
		Pagination:      page,
	}, nil
}
