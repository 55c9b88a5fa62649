package domain

import "time"

type AnomalyFlag string

const (
	FlagNormal  AnomalyFlag = "Normal"
	FlagWarning AnomalyFlag = "Warning"
	FlagAnomaly AnomalyFlag = "Anomaly"
)

type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// DailyCount is the number of deduplicated occurrences of one event on one day.
type DailyCount struct {
	Date      time.Time
	EventName string
	Count     int64
}

// AnomalySample is a DailyCount scored against its event's population.
// Median and MAD are population statistics and repeat across the event's days.
// When MAD is zero and Count is off the median, Score is +Inf or -Inf and
// Degenerate is set.
type AnomalySample struct {
	Date       time.Time
	EventName  string
	Count      int64
	Median     float64
	MAD        float64
	Score      float64
	Flag       AnomalyFlag
	Direction  Direction
	Degenerate bool
}

type AnomalyStats struct {
	TotalEvents      int64
	NormalEvents     int64
	AnomalyEvents    int64
	WarningEvents    int64
	UniqueEventTypes int64
}
