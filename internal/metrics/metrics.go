// Package metrics provides the centralized Prometheus registry for report generation.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ReportBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fund_report",
		Name:      "report_builds_total",
		Help:      "Total number of report builds by mode, format and status",
	}, []string{"mode", "format", "status"})
	RecordSourceLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fund_report",
		Name:      "record_source_loads_total",
		Help:      "Total number of record source loads by source and status",
	}, []string{"source", "status"})
	PublishRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fund_report",
		Name:      "publish_runs_total",
		Help:      "Total number of scheduled publish runs by status",
	}, []string{"status"})
)

// Gauge metrics
var (
	ReportRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fund_report",
		Name:      "report_records",
		Help:      "Number of records in the most recent report build",
	})
	RecordCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fund_report",
		Name:      "record_cache_hit_ratio",
		Help:      "Hit ratio of the record snapshot cache",
	})
)

// Histogram metrics
var (
	ReportBuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fund_report",
		Name:      "report_build_duration_seconds",
		Help:      "Duration of report build and render in seconds by format",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"format"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ReportBuildsTotal)
		registry.MustRegister(RecordSourceLoadsTotal)
		registry.MustRegister(PublishRunsTotal)

		registry.MustRegister(ReportRecords)
		registry.MustRegister(RecordCacheHitRatio)

		registry.MustRegister(ReportBuildDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordReportBuild records a finished build and render.
// status should be one of: "success", "failure"
func RecordReportBuild(mode, format, status string, durationSeconds float64, records int) {
	ReportBuildsTotal.WithLabelValues(mode, format, status).Inc()
	ReportBuildDuration.WithLabelValues(format).Observe(durationSeconds)
	if status == "success" {
		ReportRecords.Set(float64(records))
	}
}

// RecordSourceLoad records a record source load attempt.
func RecordSourceLoad(source, status string) {
	RecordSourceLoadsTotal.WithLabelValues(source, status).Inc()
}

// RecordPublishRun records a scheduled publish run.
func RecordPublishRun(status string) {
	PublishRunsTotal.WithLabelValues(status).Inc()
}

// UpdateCacheHitRatio updates the record cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	RecordCacheHitRatio.Set(ratio)
}
