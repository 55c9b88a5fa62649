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

type GetRealtimeUseCase struct {
	store    ports.EventRecordStore
	settings Settings
}

func NewGetRealtimeUseCase(store ports.EventRecordStore, s Settings) *GetRealtimeUseCase {
	return &GetRealtimeUseCase{store: store, settings: s.withDefaults()}
}

// Execute reports on the most recent data. Before the cutoff hour the window
// is yesterday plus today, from the cutoff on it is today only.
func (uc *GetRealtimeUseCase) Execute(ctx context.Context) (*domain.RealtimeReport, error) {
	now := uc.settings.Clock().In(uc.settings.Location)
	rng, window := realtimeWindow(now, uc.settings.RealtimeCutoffHour)
	th := uc.settings.Thresholds
	top := uc.settings.RealtimeTop

	records, err := fetchDeduplicated(ctx, uc.store, ports.RecordFilter{Range: rng})
	if err != nil {
		return nil, err
	}

	out := domain.RealtimeReport{Range: rng, Window: window, GeneratedAt: now}
	var (
		metrics    domain.GlobalMetrics
		eventStats []domain.QualityBucket
		pages      []domain.QualityBucket
		params     []domain.QualityBucket
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		metrics, err = engine.GlobalMetrics(gctx, records)
		return err
	})

	g.Go(func() error {
		var err error
		eventStats, err = topEventsByVolume(gctx, records, th, top)
		return err
	})

	g.Go(func() error {
		var err error
		pages, err = pagesWithErrors(gctx, records, th, top)
		return err
	})

	g.Go(func() error {
		var err error
		params, err = engine.AggregateByParameter(gctx, records, th, top)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Metrics = metrics
	out.EventStats = eventStats
	out.Pages = pages
	out.Parameters = params

	uc.settings.Logger.Debug("realtime view built",
		zap.String("window", string(window)),
		zap.Int("records", len(records)),
	)
	return &out, nil
}

func realtimeWindow(now time.Time, cutoffHour int) (domain.DateRange, domain.RealtimeWindow) {
	today := domain.Day(now)
	if now.Hour() < cutoffHour {
		return domain.DateRange{Start: today.AddDate(0, 0, -1), End: today}, domain.WindowPreviousAndToday
	}
	return domain.DateRange{Start: today, End: today}, domain.WindowToday
}
