package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ReportLogger provides dedicated logging for report builds and exports.
type ReportLogger struct {
	*logrus.Entry
}

// NewReportLogger creates a new report logger.
func NewReportLogger(baseLogger *logrus.Logger) *ReportLogger {
	return &ReportLogger{
		Entry: baseLogger.WithField("component", "report"),
	}
}

// LogSourceLoaded logs a successful record load.
func (rl *ReportLogger) LogSourceLoaded(source string, records int, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"source":      source,
		"records":     records,
		"duration_ms": duration.Milliseconds(),
	}).Debug("Records loaded")
}

// LogSourceFailure logs a failed record load.
func (rl *ReportLogger) LogSourceFailure(source string, err error) {
	rl.WithFields(logrus.Fields{
		"source": source,
	}).WithError(err).Error("Record source unavailable")
}

// LogReportBuilt logs a finished document build.
func (rl *ReportLogger) LogReportBuilt(reportID, mode string, sections, records int, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"report_id":   reportID,
		"mode":        mode,
		"sections":    sections,
		"records":     records,
		"duration_ms": duration.Milliseconds(),
	}).Info("Report built")
}

// LogExportServed logs a rendered export.
func (rl *ReportLogger) LogExportServed(reportID, format, filename string, bytes int64) {
	rl.WithFields(logrus.Fields{
		"report_id": reportID,
		"format":    format,
		"filename":  filename,
		"bytes":     bytes,
	}).Info("Report exported")
}

// LogPublishRun logs one scheduled publishing run.
func (rl *ReportLogger) LogPublishRun(files []string, err error) {
	entry := rl.WithFields(logrus.Fields{
		"event_type": "publish",
		"files":      files,
	})
	if err != nil {
		entry.WithError(err).Error("Scheduled publish failed")
		return
	}
	entry.Info("Scheduled publish completed")
}
