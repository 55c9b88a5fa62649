package engine

import (
	"time"

	"event-quality-service/internal/quality/core/domain"
)

// Complete returns a dense series with exactly one point per calendar day of rng.
// Days missing from points are filled with zero(day); points outside rng are
// dropped. When several points fall on the same day the first one wins.
// Days advance with AddDate so month and year boundaries follow the calendar.
func Complete[T any](points []T, dateOf func(T) time.Time, rng domain.DateRange, zero func(time.Time) T) ([]T, error) {
	start, end := domain.Day(rng.Start), domain.Day(rng.End)
	if end.Before(start) {
		return nil, domain.ErrInvalidDateRange
	}

	byDay := make(map[time.Time]T, len(points))
	for _, p := range points {
		day := domain.Day(dateOf(p))
		if _, seen := byDay[day]; seen {
			continue
		}
		byDay[day] = p
	}

	out := make([]T, 0, len(points))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if p, ok := byDay[day]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, zero(day))
	}
	return out, nil
}

func CompleteQualitySeries(points []domain.QualityPoint, rng domain.DateRange) ([]domain.QualityPoint, error) {
	return Complete(points, func(p domain.QualityPoint) time.Time { return p.Date }, rng, domain.ZeroQualityPoint)
}

func CompleteAnomalySeries(points []domain.AnomalyPoint, rng domain.DateRange) ([]domain.AnomalyPoint, error) {
	return Complete(points, func(p domain.AnomalyPoint) time.Time { return p.Date }, rng, domain.ZeroAnomalyPoint)
}
