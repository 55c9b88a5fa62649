package domain

import "time"

// QualityPoint is one day of the tracking chart.
type QualityPoint struct {
	Date            time.Time
	Total           int64
	WithErrors      int64
	ErrorPercentage float64
}

// AnomalyPoint is one day of the anomaly chart. AnomalyEvents sums the counts
// of samples flagged Anomaly on that day.
type AnomalyPoint struct {
	Date          time.Time
	TotalEvents   int64
	AnomalyEvents int64
}

func ZeroQualityPoint(day time.Time) QualityPoint { return QualityPoint{Date: day} }

func ZeroAnomalyPoint(day time.Time) AnomalyPoint { return AnomalyPoint{Date: day} }
