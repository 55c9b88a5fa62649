package usecase

import (
	"context"
	"slices"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/engine"
)

// topEventsByVolume is the per observed event breakdown, busiest first.
func topEventsByVolume(ctx context.Context, records []domain.EventRecord, th domain.Thresholds, n int) ([]domain.QualityBucket, error) {
	buckets, err := engine.AggregateByEvent(ctx, records, engine.ByObservedName, th)
	if err != nil {
		return nil, err
	}
	engine.SortByVolume(buckets)
	return truncate(buckets, n), nil
}

// pagesWithErrors keeps the pages that had at least one faulty event, worst
// error rate first.
func pagesWithErrors(ctx context.Context, records []domain.EventRecord, th domain.Thresholds, n int) ([]domain.QualityBucket, error) {
	buckets, err := engine.AggregateByEvent(ctx, records, engine.ByPageLocation, th)
	if err != nil {
		return nil, err
	}
	buckets = slices.DeleteFunc(buckets, func(b domain.QualityBucket) bool { return b.WithErrors == 0 })
	engine.SortByErrorRate(buckets)
	return truncate(buckets, n), nil
}

func truncate[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
