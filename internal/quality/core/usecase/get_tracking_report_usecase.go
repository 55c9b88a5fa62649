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

type GetTrackingReportUseCase struct {
	store    ports.EventRecordStore
	settings Settings
}

func NewGetTrackingReportUseCase(store ports.EventRecordStore, s Settings) *GetTrackingReportUseCase {
	return &GetTrackingReportUseCase{store: store, settings: s.withDefaults()}
}

// Execute builds the tracking-plan view: per expected event quality, the daily
// error chart and one page of detail rows.
func (uc *GetTrackingReportUseCase) Execute(ctx context.Context, in ReportInput) (*domain.TrackingReport, error) {
	started := time.Now()

	q, err := resolveQuery(ctx, uc.store, uc.settings, in)
	if err != nil {
		return nil, err
	}
	q.ExpectedEventName = eventFilter(in.EventName)

	records, err := fetchDeduplicated(ctx, uc.store, ports.RecordFilter{
		Range:             q.Range,
		ExpectedEventName: q.ExpectedEventName,
	})
	if err != nil {
		return nil, err
	}

	var (
		events  []domain.QualityBucket
		stats   domain.TrackingStats
		chart   []domain.QualityPoint
		details []domain.EventRecord
		page    domain.PageInfo
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		buckets, err := engine.AggregateByEvent(gctx, records, engine.ByExpectedName, q.Thresholds)
		if err != nil {
			return err
		}
		engine.SortByRisk(buckets, q.Thresholds)
		events = buckets
		stats = engine.SummarizeTracking(buckets)
		return nil
	})

	g.Go(func() error {
		points, err := engine.QualitySeries(gctx, records)
		if err != nil {
			return err
		}
		chart, err = engine.CompleteQualitySeries(points, q.Range)
		return err
	})

	g.Go(func() error {
		rows := slices.Clone(records)
		if in.ErrorsOnly {
			rows = slices.DeleteFunc(rows, func(r domain.EventRecord) bool { return !r.HasMissingParams })
		}
		engine.SortDetails(rows)

		p, err := engine.PlanPage(len(rows), q.Page, q.PageSize)
		if err != nil {
			return err
		}
		page = p
		details = engine.Paginate(rows, p)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc.settings.Logger.Debug("tracking report built",
		zap.String("event", q.ExpectedEventName),
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(started)),
	)

	return &domain.TrackingReport{
		Range:      q.Range,
		EventName:  q.ExpectedEventName,
		Events:     events,
		Chart:      chart,
		Details:    details,
		Stats:      stats,
		Pagination: page,
	}, nil
}
