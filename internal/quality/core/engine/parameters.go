package engine

import (
	"context"
	"slices"
	"strings"

	"event-quality-service/internal/quality/core/domain"
)

type paramKey struct {
	class domain.ParamClass
	name  string
}

func paramsOf(r domain.EventRecord, class domain.ParamClass) []string {
	switch class {
	case domain.ParamClassEvent:
		return r.MissingEventParams
	case domain.ParamClassUser:
		return r.MissingUserParams
	case domain.ParamClassItem:
		return r.MissingItemParams
	}
	return nil
}

func classRank(c domain.ParamClass) int {
	return slices.Index(domain.ParamClasses, c)
}

// AggregateByParameter counts, for each (parameter, class) pair, the distinct
// records missing that parameter, relative to the number of records in scope.
// The result is ordered by occurrences and truncated to topN (topN <= 0 keeps all).
func AggregateByParameter(ctx context.Context, records []domain.EventRecord, th domain.Thresholds, topN int) ([]domain.QualityBucket, error) {
	occurrences := make(map[paramKey]map[string]struct{})
	keys := make(map[string]struct{}, len(records))

	for i, r := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		keys[r.PrimaryKey] = struct{}{}
		for _, class := range domain.ParamClasses {
			for _, name := range paramsOf(r, class) {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				pk := paramKey{class: class, name: name}
				set, ok := occurrences[pk]
				if !ok {
					set = make(map[string]struct{})
					occurrences[pk] = set
				}
				set[r.PrimaryKey] = struct{}{}
			}
		}
	}

	total := int64(len(keys))
	out := make([]domain.QualityBucket, 0, len(occurrences))
	for pk, set := range occurrences {
		n := int64(len(set))
		out = append(out, domain.QualityBucket{
			Key:             pk.name,
			Class:           pk.class,
			Total:           total,
			WithErrors:      n,
			ErrorPercentage: Percentage(n, total),
			Tier:            th.ParamTierFor(rawPercentage(n, total)),
		})
	}

	slices.SortFunc(out, func(a, b domain.QualityBucket) int {
		switch {
		case a.WithErrors > b.WithErrors:
			return -1
		case a.WithErrors < b.WithErrors:
			return 1
		}
		if ca, cb := classRank(a.Class), classRank(b.Class); ca != cb {
			return ca - cb
		}
		return strings.Compare(a.Key, b.Key)
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}
