package domain

import "time"

type QualityTier string

const (
	TierGood          QualityTier = "Good"
	TierWarning       QualityTier = "Warning"
	TierNeedAttention QualityTier = "NeedAttention"

	// parameter tiers
	TierAttention QualityTier = "Attention"
	TierCritical  QualityTier = "Critical"
)

type ParamClass string

const (
	ParamClassEvent ParamClass = "event"
	ParamClassUser  ParamClass = "user"
	ParamClassItem  ParamClass = "item"
)

// ParamClasses is the fixed reporting order of parameter classes.
var ParamClasses = []ParamClass{ParamClassEvent, ParamClassUser, ParamClassItem}

// QualityBucket aggregates deduplicated records under one key: an event name,
// a page location or a (parameter, class) pair.
type QualityBucket struct {
	Key   string
	Class ParamClass // parameter buckets only

	Total           int64
	WithErrors      int64
	MissingInGA4    int64
	ErrorPercentage float64
	Tier            QualityTier

	FirstDate      *time.Time
	LastDate       *time.Time
	FirstErrorDate *time.Time
	LastErrorDate  *time.Time
}

// Thresholds drives every classification of the engine. Percentages are in
// the 0..100 range, anomaly thresholds are absolute modified z-scores.
type Thresholds struct {
	QualityAttention float64
	ParamCritical    float64
	ParamAttention   float64
	AnomalyWarning   float64
	AnomalyCritical  float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		QualityAttention: 10,
		ParamCritical:    50,
		ParamAttention:   10,
		AnomalyWarning:   1.0,
		AnomalyCritical:  3.5,
	}
}

// QualityTierFor classifies an event error percentage.
func (t Thresholds) QualityTierFor(pct float64) QualityTier {
	switch {
	case pct <= 0:
		return TierGood
	case pct < t.QualityAttention:
		return TierWarning
	default:
		return TierNeedAttention
	}
}

// ParamTierFor classifies a missing-parameter percentage.
func (t Thresholds) ParamTierFor(pct float64) QualityTier {
	switch {
	case pct >= t.ParamCritical:
		return TierCritical
	case pct >= t.ParamAttention:
		return TierAttention
	case pct > 0:
		return TierWarning
	default:
		return TierGood
	}
}
