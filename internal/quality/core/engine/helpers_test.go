package engine_test

import (
	"fmt"
	"math/rand"
	"time"

	"event-quality-service/internal/quality/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(pk, name string, date time.Time, missing bool) domain.EventRecord {
	return domain.EventRecord{
		PrimaryKey:        pk,
		EventName:         name,
		ExpectedEventName: name,
		EventDate:         date,
		EventTimestamp:    date.Add(10 * time.Hour),
		HasMissingParams:  missing,
	}
}

// randomRecords builds a reproducible record set from seed: a handful of event
// names over a two-week window with random missing parameters.
func randomRecords(seed int64, n int) []domain.EventRecord {
	rnd := rand.New(rand.NewSource(seed))
	names := []string{"purchase", "page_view", "add_to_cart", "login"}
	params := []string{"currency", "value", "item_id", "user_tier", "coupon"}
	start := day(2025, 6, 1)

	out := make([]domain.EventRecord, 0, n)
	for i := 0; i < n; i++ {
		name := names[rnd.Intn(len(names))]
		r := rec(fmt.Sprintf("pk-%04d", i), name, start.AddDate(0, 0, rnd.Intn(14)), false)
		if rnd.Intn(3) == 0 {
			r.HasMissingParams = true
			r.MissingEventParams = []string{params[rnd.Intn(len(params))]}
			if rnd.Intn(2) == 0 {
				r.MissingUserParams = []string{"user_tier"}
			}
			if rnd.Intn(4) == 0 {
				r.MissingItemParams = []string{"item_id"}
			}
		}
		r.UserPseudoID = fmt.Sprintf("user-%d", rnd.Intn(20))
		out = append(out, r)
	}
	return out
}

// duplicateShuffled repeats every record 1 to 5 times and shuffles the result.
func duplicateShuffled(seed int64, records []domain.EventRecord) []domain.EventRecord {
	rnd := rand.New(rand.NewSource(seed ^ 0x5eed))
	var out []domain.EventRecord
	for _, r := range records {
		copies := 1 + rnd.Intn(5)
		for c := 0; c < copies; c++ {
			out = append(out, r)
		}
	}
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
