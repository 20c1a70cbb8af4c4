// Package scheduler publishes report exports on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fund-report/internal/logger"
	"github.com/yourusername/fund-report/internal/metrics"
	"github.com/yourusername/fund-report/internal/service"
)

// Exporter renders one report export.
type Exporter interface {
	Export(ctx context.Context, req service.Request, f service.Format, w io.Writer) (service.ExportResult, error)
}

// Config controls what a publish run writes.
type Config struct {
	OutputDir string
	Formats   []service.Format
	Request   service.Request
	// RunTimeout bounds one publish run.
	RunTimeout time.Duration
}

// Publisher writes the configured exports to a directory, on demand or on a
// cron schedule.
type Publisher struct {
	cron            *cron.Cron
	exporter        Exporter
	cfg             Config
	log             *logger.ReportLogger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewPublisher creates a publisher. Schedules are evaluated in UTC.
func NewPublisher(exporter Exporter, cfg Config, log *logrus.Logger) *Publisher {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}
	return &Publisher{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		exporter:        exporter,
		cfg:             cfg,
		log:             logger.NewReportLogger(log),
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// Schedule adds a publish run at every tick of a standard cron expression.
func (p *Publisher) Schedule(cronExpression string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("cannot schedule job while publisher is running")
	}

	entryID, err := p.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.RunTimeout)
		defer cancel()
		// Errors are logged and counted by RunOnce.
		p.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	p.jobIDs = append(p.jobIDs, entryID)
	p.log.WithField("cron", cronExpression).Info("Scheduled report publishing")
	return nil
}

// RunOnce writes every configured format to the output directory and returns
// the written paths. A failed format does not stop the others.
func (p *Publisher) RunOnce(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		metrics.RecordPublishRun("failure")
		p.log.LogPublishRun(nil, err)
		return nil, err
	}

	var files []string
	var errs []error
	for _, f := range p.cfg.Formats {
		path, err := p.publish(ctx, f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		files = append(files, path)
	}

	err := errors.Join(errs...)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordPublishRun(status)
	p.log.LogPublishRun(files, err)
	return files, err
}

// publishedFileMode lets other users, such as a web server, read published reports.
const publishedFileMode os.FileMode = 0o644

// publish writes one export through a temporary file so readers never see a
// partial report.
func (p *Publisher) publish(ctx context.Context, f service.Format) (string, error) {
	tmp, err := os.CreateTemp(p.cfg.OutputDir, ".fund-report-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	res, err := p.exporter.Export(ctx, p.cfg.Request, f, tmp)
	if err == nil {
		err = tmp.Chmod(publishedFileMode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(p.cfg.OutputDir, res.Filename)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	p.log.LogExportServed(res.ReportID, string(f), path, res.Bytes)
	return path, nil
}

// Start starts the cron scheduler.
func (p *Publisher) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("publisher is already running")
	}
	if len(p.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	p.cron.Start()
	p.isRunning = true
	p.log.WithField("jobs", len(p.jobIDs)).Info("Publisher started")
	return nil
}

// Stop waits for a running job to finish, up to the graceful timeout.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.gracefulTimeout)
	defer cancel()

	p.isRunning = false
	select {
	case <-p.cron.Stop().Done():
		p.log.Info("Publisher stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publisher stop timed out: %w", ctx.Err())
	}
}

// IsRunning returns whether the scheduler is currently running.
func (p *Publisher) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isRunning
}

// NextRun returns the next scheduled run, or the zero time without jobs.
func (p *Publisher) NextRun() time.Time {
	var next time.Time
	now := time.Now().UTC()
	for _, e := range p.cron.Entries() {
		n := e.Next
		if n.IsZero() {
			// Entries get their first Next when the cron starts.
			n = e.Schedule.Next(now)
		}
		if next.IsZero() || n.Before(next) {
			next = n
		}
	}
	return next
}
