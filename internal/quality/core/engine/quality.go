package engine

import (
	"context"
	"slices"
	"strings"
	"time"

	"event-quality-service/internal/quality/core/domain"
)

// EventKey picks the grouping key of a record. An empty key drops the record
// from the aggregation.
type EventKey func(r domain.EventRecord) string

// ByExpectedName groups by tracking-plan event name.
func ByExpectedName(r domain.EventRecord) string { return r.ExpectedEventName }

// ByObservedName groups by the event name actually received.
func ByObservedName(r domain.EventRecord) string { return r.EventName }

// ByPageLocation groups by the page the event fired on.
func ByPageLocation(r domain.EventRecord) string { return r.PageLocation }

type bucketAcc struct {
	total, withErrors, missing int64

	first, last           time.Time
	firstError, lastError time.Time
}

func (a *bucketAcc) add(r domain.EventRecord) {
	a.total++
	a.first = minDate(a.first, r.EventDate)
	a.last = maxDate(a.last, r.EventDate)
	if r.HasMissingParams {
		a.withErrors++
		a.firstError = minDate(a.firstError, r.EventDate)
		a.lastError = maxDate(a.lastError, r.EventDate)
	}
	if r.MissingEventInGA4 {
		a.missing++
	}
}

// AggregateByEvent computes one quality bucket per key over deduplicated records.
// Buckets come back ordered by key; use SortByRisk, SortByVolume or
// SortByErrorRate for presentation.
func AggregateByEvent(ctx context.Context, records []domain.EventRecord, key EventKey, th domain.Thresholds) ([]domain.QualityBucket, error) {
	accs := make(map[string]*bucketAcc)

	for i, r := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		k := key(r)
		if k == "" {
			continue
		}
		acc, ok := accs[k]
		if !ok {
			acc = &bucketAcc{}
			accs[k] = acc
		}
		acc.add(r)
	}

	out := make([]domain.QualityBucket, 0, len(accs))
	for k, acc := range accs {
		out = append(out, domain.QualityBucket{
			Key:             k,
			Total:           acc.total,
			WithErrors:      acc.withErrors,
			MissingInGA4:    acc.missing,
			ErrorPercentage: Percentage(acc.withErrors, acc.total),
			Tier:            th.QualityTierFor(rawPercentage(acc.withErrors, acc.total)),
			FirstDate:       datePtr(acc.first),
			LastDate:        datePtr(acc.last),
			FirstErrorDate:  datePtr(acc.firstError),
			LastErrorDate:   datePtr(acc.lastError),
		})
	}
	slices.SortFunc(out, func(a, b domain.QualityBucket) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

// SortByRisk puts buckets at or above the attention threshold first, then the
// partially failing ones, then the clean ones. Ties go to the larger total.
func SortByRisk(buckets []domain.QualityBucket, th domain.Thresholds) {
	rank := func(b domain.QualityBucket) int {
		pct := rawPercentage(b.WithErrors, b.Total)
		switch {
		case pct >= th.QualityAttention:
			return 0
		case pct > 0:
			return 1
		default:
			return 2
		}
	}
	slices.SortStableFunc(buckets, func(a, b domain.QualityBucket) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return byTotalThenKey(a, b)
	})
}

func SortByVolume(buckets []domain.QualityBucket) {
	slices.SortStableFunc(buckets, byTotalThenKey)
}

func SortByErrorRate(buckets []domain.QualityBucket) {
	slices.SortStableFunc(buckets, func(a, b domain.QualityBucket) int {
		pa, pb := rawPercentage(a.WithErrors, a.Total), rawPercentage(b.WithErrors, b.Total)
		switch {
		case pa > pb:
			return -1
		case pa < pb:
			return 1
		}
		return byTotalThenKey(a, b)
	})
}

func byTotalThenKey(a, b domain.QualityBucket) int {
	switch {
	case a.Total > b.Total:
		return -1
	case a.Total < b.Total:
		return 1
	}
	return strings.Compare(a.Key, b.Key)
}

// QualitySeries is the sparse daily error series of the tracking chart.
func QualitySeries(ctx context.Context, records []domain.EventRecord) ([]domain.QualityPoint, error) {
	byDay := make(map[time.Time]*domain.QualityPoint)

	for i, r := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		day := domain.Day(r.EventDate)
		p, ok := byDay[day]
		if !ok {
			p = &domain.QualityPoint{Date: day}
			byDay[day] = p
		}
		p.Total++
		if r.HasMissingParams {
			p.WithErrors++
		}
	}

	out := make([]domain.QualityPoint, 0, len(byDay))
	for _, p := range byDay {
		p.ErrorPercentage = Percentage(p.WithErrors, p.Total)
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b domain.QualityPoint) int { return a.Date.Compare(b.Date) })
	return out, nil
}

// GlobalMetrics is the dashboard headline over deduplicated records.
func GlobalMetrics(ctx context.Context, records []domain.EventRecord) (domain.GlobalMetrics, error) {
	var m domain.GlobalMetrics
	var first, last time.Time
	users := make(map[string]struct{})

	for i, r := range records {
		if err := checkpoint(ctx, i); err != nil {
			return domain.GlobalMetrics{}, err
		}
		m.TotalEvents++
		if r.HasMissingParams {
			m.ErrorEvents++
		} else {
			m.GoodEvents++
		}
		if r.UserPseudoID != "" {
			users[r.UserPseudoID] = struct{}{}
		}
		first = minDate(first, r.EventDate)
		last = maxDate(last, r.EventDate)
	}

	m.UniqueUsers = int64(len(users))
	m.MinDate = datePtr(first)
	m.MaxDate = datePtr(last)
	m.ErrorRate = Percentage(m.ErrorEvents, m.TotalEvents)
	return m, nil
}

// SummarizeTracking folds the per-event buckets into the tracking headline.
func SummarizeTracking(buckets []domain.QualityBucket) domain.TrackingStats {
	var s domain.TrackingStats
	for _, b := range buckets {
		s.TotalEvents += b.Total
		s.TotalErrors += b.WithErrors
		s.MissingInGA4 += b.MissingInGA4
		if b.WithErrors > 0 {
			s.EventsWithErrors++
		}
	}
	s.TotalEventTypes = int64(len(buckets))
	s.ErrorRate = Percentage(s.TotalErrors, s.TotalEvents)
	return s
}

// SortDetails orders detail rows for the paginated view: rows with missing
// parameters first, newest first, then by key.
func SortDetails(records []domain.EventRecord) {
	slices.SortStableFunc(records, func(a, b domain.EventRecord) int {
		if a.HasMissingParams != b.HasMissingParams {
			if a.HasMissingParams {
				return -1
			}
			return 1
		}
		if c := b.EventTimestamp.Compare(a.EventTimestamp); c != 0 {
			return c
		}
		return strings.Compare(a.PrimaryKey, b.PrimaryKey)
	})
}

func minDate(cur, d time.Time) time.Time {
	if d.IsZero() {
		return cur
	}
	if cur.IsZero() || d.Before(cur) {
		return d
	}
	return cur
}

func maxDate(cur, d time.Time) time.Time {
	if d.IsZero() {
		return cur
	}
	if cur.IsZero() || d.After(cur) {
		return d
	}
	return cur
}

func datePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
