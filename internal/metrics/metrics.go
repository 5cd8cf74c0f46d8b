// Package metrics defines Prometheus metrics for cinedex.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinedex_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinedex_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinedex_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	MovieCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinedex_movies_total",
			Help: "Total movie count",
		},
	)

	StarCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinedex_stars_total",
			Help: "Total star count",
		},
	)

	IngestRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinedex_ingest_rows_total",
			Help: "Rows written by the ingest pipeline per table",
		},
		[]string{"table"},
	)

	IngestBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinedex_ingest_batches_total",
			Help: "Ingest batches flushed per table and outcome (ok, conflict, failed)",
		},
		[]string{"table", "outcome"},
	)

	IngestOrphans = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cinedex_ingest_orphans_total",
			Help: "Relationship rows dropped because an endpoint was never materialized",
		},
	)

	IngestMalformedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinedex_ingest_malformed_rows_total",
			Help: "Dump rows that could not be parsed, per file",
		},
		[]string{"file"},
	)

	IngestPhaseDuration = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinedex_ingest_phase_duration_seconds",
			Help: "Wall time of the last run of each ingest phase",
		},
		[]string{"phase"},
	)

	IngestLastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinedex_ingest_last_success_timestamp_seconds",
			Help: "Unix time of the last successful ingest run",
		},
	)
)

// IngestCollectors lists the collectors pushed to a Pushgateway after an ingest run.
func IngestCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		IngestRows, IngestBatches, IngestOrphans,
		IngestMalformedRows, IngestPhaseDuration, IngestLastSuccess,
	}
}

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		MovieCount, StarCount,
	)
	prometheus.MustRegister(IngestCollectors()...)
}
