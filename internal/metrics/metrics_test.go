package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordReportBuild(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(ReportBuildsTotal.WithLabelValues("grouped", "pdf", "success"))
	RecordReportBuild("grouped", "pdf", "success", 0.2, 7)

	assert.Equal(t, before+1, testutil.ToFloat64(ReportBuildsTotal.WithLabelValues("grouped", "pdf", "success")))
	assert.Equal(t, float64(7), testutil.ToFloat64(ReportRecords))
}

func TestRecordReportBuildFailureKeepsRecordGauge(t *testing.T) {
	InitRegistry()

	RecordReportBuild("flat", "xlsx", "success", 0.1, 3)
	RecordReportBuild("flat", "xlsx", "failure", 0.1, 0)

	assert.Equal(t, float64(3), testutil.ToFloat64(ReportRecords))
}

func TestRecordSourceLoadAndPublish(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		source string
		status string
	}{
		{"json success", "json", "success"},
		{"http failure", "http", "failure"},
		{"cache hit", "cache", "hit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSourceLoad(tt.source, tt.status)
			})
		})
	}

	assert.NotPanics(t, func() {
		RecordPublishRun("success")
		UpdateCacheHitRatio(0.5)
	})
	assert.Equal(t, 0.5, testutil.ToFloat64(RecordCacheHitRatio))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordPublishRun("success")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fund_report_publish_runs_total"))
}
