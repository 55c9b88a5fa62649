package domain

import "time"

// QueryContext is the explicit scope of one report request. Nothing in the
// engine reads the clock or the environment; everything it needs is here.
type QueryContext struct {
	Range             DateRange
	EventName         string
	ExpectedEventName string

	Page     int
	PageSize int

	Thresholds    Thresholds
	TopParameters int
	TopEvents     int
	TopPages      int
}

type TrackingStats struct {
	TotalEvents      int64
	TotalErrors      int64
	ErrorRate        float64
	MissingInGA4     int64
	EventsWithErrors int64
	TotalEventTypes  int64
}

type TrackingReport struct {
	Range      DateRange
	EventName  string
	Events     []QualityBucket
	Chart      []QualityPoint
	Details    []EventRecord
	Stats      TrackingStats
	Pagination PageInfo
}

type ParameterReport struct {
	Range       DateRange
	EventName   string
	TotalEvents int64
	Parameters  []QualityBucket
}

type AnomalyReport struct {
	Range           DateRange
	EventName       string
	Samples         []AnomalySample
	Chart           []AnomalyPoint
	AvailableEvents []string
	Stats           AnomalyStats
	Pagination      PageInfo
}

type GlobalMetrics struct {
	TotalEvents int64
	GoodEvents  int64
	ErrorEvents int64
	UniqueUsers int64
	MinDate     *time.Time
	MaxDate     *time.Time
	ErrorRate   float64
}

type RealtimeWindow string

const (
	// WindowPreviousAndToday covers yesterday and today, used in the morning
	// while today alone is still thin.
	WindowPreviousAndToday RealtimeWindow = "previous_and_today"
	WindowToday            RealtimeWindow = "today"
)

type RealtimeReport struct {
	Range       DateRange
	Window      RealtimeWindow
	GeneratedAt time.Time
	Metrics     GlobalMetrics
	EventStats  []QualityBucket
	Pages       []QualityBucket
	Parameters  []QualityBucket
}

type Dashboard struct {
	Range      DateRange
	Metrics    GlobalMetrics
	EventStats []QualityBucket
	Parameters []QualityBucket
	Pages      []QualityBucket
	Anomalies  AnomalyStats
	Chart      []QualityPoint
}
