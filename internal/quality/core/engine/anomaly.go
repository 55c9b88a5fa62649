package engine

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"event-quality-service/internal/quality/core/domain"
)

// madScale brings MAD onto the scale of a standard deviation under normality.
const madScale = 0.6745

var ErrInvalidThresholds = errors.New("anomaly thresholds must satisfy 0 < warning <= anomaly")

// Detector scores daily counts with the modified z-score
// 0.6745 * (count - median) / MAD, computed per event name over exactly the
// population it is given.
type Detector struct {
	WarningThreshold float64
	AnomalyThreshold float64
}

func NewDetector(th domain.Thresholds) (Detector, error) {
	d := Detector{WarningThreshold: th.AnomalyWarning, AnomalyThreshold: th.AnomalyCritical}
	if d.WarningThreshold <= 0 || d.WarningThreshold > d.AnomalyThreshold {
		return Detector{}, ErrInvalidThresholds
	}
	return d, nil
}

// DailyCounts groups deduplicated records by (day, observed event name).
// Records that were never observed (empty event name) have no volume and are skipped.
func DailyCounts(ctx context.Context, records []domain.EventRecord) ([]domain.DailyCount, error) {
	type dayEvent struct {
		day  time.Time
		name string
	}
	counts := make(map[dayEvent]int64)

	for i, r := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		if r.EventName == "" {
			continue
		}
		counts[dayEvent{day: domain.Day(r.EventDate), name: r.EventName}]++
	}

	out := make([]domain.DailyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.DailyCount{Date: k.day, EventName: k.name, Count: n})
	}
	slices.SortFunc(out, compareDailyCounts)
	return out, nil
}

func compareDailyCounts(a, b domain.DailyCount) int {
	if c := strings.Compare(a.EventName, b.EventName); c != 0 {
		return c
	}
	return a.Date.Compare(b.Date)
}

// Detect returns one sample per distinct (date, event) pair of counts, ordered
// by event name then date. Counts repeating the same pair are summed.
func (d Detector) Detect(ctx context.Context, counts []domain.DailyCount) ([]domain.AnomalySample, error) {
	merged := mergeCounts(counts)

	var out []domain.AnomalySample
	for start := 0; start < len(merged); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start
		for end < len(merged) && merged[end].EventName == merged[start].EventName {
			end++
		}
		out = append(out, d.scorePopulation(merged[start:end])...)
		start = end
	}
	return out, nil
}

func mergeCounts(counts []domain.DailyCount) []domain.DailyCount {
	sorted := make([]domain.DailyCount, len(counts))
	for i, c := range counts {
		c.Date = domain.Day(c.Date)
		sorted[i] = c
	}
	slices.SortFunc(sorted, compareDailyCounts)

	merged := sorted[:0]
	for _, c := range sorted {
		if n := len(merged); n > 0 && compareDailyCounts(merged[n-1], c) == 0 {
			merged[n-1].Count += c.Count
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

func (d Detector) scorePopulation(pop []domain.DailyCount) []domain.AnomalySample {
	values := make([]float64, len(pop))
	for i, c := range pop {
		values[i] = float64(c.Count)
	}
	med := median(values)

	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	mad := median(deviations)

	out := make([]domain.AnomalySample, len(pop))
	for i, c := range pop {
		s := domain.AnomalySample{
			Date:      c.Date,
			EventName: c.EventName,
			Count:     c.Count,
			Median:    Round(med, outputPlaces),
			MAD:       Round(mad, outputPlaces),
			Direction: directionOf(values[i], med),
		}
		switch {
		case values[i] == med:
			s.Score = 0
			s.Flag = domain.FlagNormal
		case mad == 0:
			// no spread to measure against: any deviation is extreme
			s.Score = math.Inf(sign(values[i] - med))
			s.Degenerate = true
			s.Flag = domain.FlagAnomaly
		default:
			score := madScale * (values[i] - med) / mad
			s.Score = Round(score, outputPlaces)
			s.Flag = d.classify(score)
		}
		out[i] = s
	}
	return out
}

func (d Detector) classify(score float64) domain.AnomalyFlag {
	abs := math.Abs(score)
	switch {
	case abs >= d.AnomalyThreshold:
		return domain.FlagAnomaly
	case abs >= d.WarningThreshold:
		return domain.FlagWarning
	default:
		return domain.FlagNormal
	}
}

func directionOf(v, med float64) domain.Direction {
	switch {
	case v > med:
		return domain.DirectionAbove
	case v < med:
		return domain.DirectionBelow
	default:
		return domain.DirectionNone
	}
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// SortSamplesForDisplay orders samples newest day first, then by event name.
func SortSamplesForDisplay(samples []domain.AnomalySample) {
	slices.SortStableFunc(samples, func(a, b domain.AnomalySample) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.EventName, b.EventName)
	})
}

// AnomalySeries is the sparse daily chart: total volume and volume flagged Anomaly.
func AnomalySeries(samples []domain.AnomalySample) []domain.AnomalyPoint {
	byDay := make(map[time.Time]*domain.AnomalyPoint)
	for _, s := range samples {
		p, ok := byDay[s.Date]
		if !ok {
			p = &domain.AnomalyPoint{Date: s.Date}
			byDay[s.Date] = p
		}
		p.TotalEvents += s.Count
		if s.Flag == domain.FlagAnomaly {
			p.AnomalyEvents += s.Count
		}
	}

	out := make([]domain.AnomalyPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b domain.AnomalyPoint) int { return a.Date.Compare(b.Date) })
	return out
}

func SummarizeAnomalies(samples []domain.AnomalySample) domain.AnomalyStats {
	var s domain.AnomalyStats
	names := make(map[string]struct{})
	for _, sample := range samples {
		s.TotalEvents++
		switch sample.Flag {
		case domain.FlagNormal:
			s.NormalEvents++
		case domain.FlagWarning:
			s.WarningEvents++
		case domain.FlagAnomaly:
			s.AnomalyEvents++
		}
		names[sample.EventName] = struct{}{}
	}
	s.UniqueEventTypes = int64(len(names))
	return s
}
