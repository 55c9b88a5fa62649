// Package telemetry holds the Prometheus collectors of the service.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"method", "route"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quality_report_duration_seconds",
			Help:    "Time to build one quality report, fetch included",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"report", "outcome"},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_records_dropped_total",
			Help: "Stored rows skipped because they are not valid event records",
		},
		[]string{"reason"},
	)

	RecordsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_records_ingested_total",
			Help: "Event records written by the ingestion endpoints",
		},
	)

	StoreFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_store_fetch_errors_total",
			Help: "Failed reads from the event record store",
		},
		[]string{"operation"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_store_breaker_state",
			Help: "Circuit breaker state of the event record store (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// ObserveReport records how long a report took and whether it succeeded.
func ObserveReport(report string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ReportDuration.WithLabelValues(report, outcome).Observe(time.Since(started).Seconds())
}
