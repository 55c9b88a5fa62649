package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/engine"
	"event-quality-service/internal/quality/core/ports"
)

type GetDashboardUseCase struct {
	store    ports.EventRecordStore
	settings Settings
}

func NewGetDashboardUseCase(store ports.EventRecordStore, s Settings) *GetDashboardUseCase {
	return &GetDashboardUseCase{store: store, settings: s.withDefaults()}
}

// Execute fetches the scope once and computes the dashboard sections
// concurrently. Any failing section fails the whole dashboard.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, in ReportInput) (*domain.Dashboard, error) {
	started := time.Now()

	detector, err := engine.NewDetector(uc.settings.Thresholds)
	if err != nil {
		return nil, err
	}

	q, err := resolveQuery(ctx, uc.store, uc.settings, in)
	if err != nil {
		return nil, err
	}

	records, err := fetchDeduplicated(ctx, uc.store, ports.RecordFilter{Range: q.Range})
	if err != nil {
		return nil, err
	}

	out := domain.Dashboard{Range: q.Range}
	var (
		metrics    domain.GlobalMetrics
		eventStats []domain.QualityBucket
		params     []domain.QualityBucket
		pages      []domain.QualityBucket
		anomalies  domain.AnomalyStats
		chart      []domain.QualityPoint
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		metrics, err = engine.GlobalMetrics(gctx, records)
		return err
	})

	g.Go(func() error {
		var err error
		eventStats, err = topEventsByVolume(gctx, records, q.Thresholds, q.TopEvents)
		return err
	})

	g.Go(func() error {
		var err error
		params, err = engine.AggregateByParameter(gctx, records, q.Thresholds, q.TopParameters)
		return err
	})

	g.Go(func() error {
		var err error
		pages, err = pagesWithErrors(gctx, records, q.Thresholds, q.TopPages)
		return err
	})

	g.Go(func() error {
		counts, err := engine.DailyCounts(gctx, records)
		if err != nil {
			return err
		}
		samples, err := detector.Detect(gctx, counts)
		if err != nil {
			return err
		}
		anomalies = engine.SummarizeAnomalies(samples)
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

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Metrics = metrics
	out.EventStats = eventStats
	out.Parameters = params
	out.Pages = pages
	out.Anomalies = anomalies
	out.Chart = chart

	uc.settings.Logger.Debug("dashboard built",
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(started)),
	)
	return &out, nil
}
