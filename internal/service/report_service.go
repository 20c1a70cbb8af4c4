// Package service wires record sources, the report pipeline and renderers.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fund-report/internal/config"
	"github.com/yourusername/fund-report/internal/logger"
	"github.com/yourusername/fund-report/internal/metrics"
	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/render"
	"github.com/yourusername/fund-report/internal/report"
	"github.com/yourusername/fund-report/internal/repository"
)

// Request narrows and orders a report. Empty fields fall back to configuration.
type Request struct {
	Mode      string
	Strategy  string
	SortField string
	Direction string
}

// ExportResult describes a written export.
type ExportResult struct {
	ReportID string
	Format   Format
	Filename string
	Bytes    int64
	Records  int
}

// ReportService builds and renders fund-performance reports.
type ReportService struct {
	repo     repository.RecordRepository
	pipeline *report.Pipeline
	cfg      config.ReportConfig
	schema   *report.Schema
	policy   report.ColorPolicy
	pdf      *render.PDFRenderer
	chart    *render.ChartRenderer
	html     *render.HTMLRenderer
	log      *logger.ReportLogger
	now      func() time.Time
}

// NewReportService creates a report service from the report configuration.
func NewReportService(
	repo repository.RecordRepository,
	cfg *config.ReportConfig,
	fonts render.RenderingConfig,
	log *logrus.Logger,
) (*ReportService, error) {
	policy, err := report.ColorPolicyByName(cfg.ColorPolicy)
	if err != nil {
		return nil, err
	}
	schema, err := SchemaFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	s := &ReportService{
		repo:   repo,
		cfg:    *cfg,
		schema: schema,
		policy: policy,
		pdf:    render.NewPDFRenderer(fonts),
		chart:  render.NewChartRenderer(fonts),
		html:   render.NewHTMLRenderer(),
		log:    logger.NewReportLogger(log),
		now:    time.Now,
	}
	s.pipeline = report.NewPipeline(s.newAssembler())
	return s, nil
}

func (s *ReportService) newAssembler() *report.Assembler {
	l := s.cfg.Labels
	a := report.NewAssembler(report.Labels{
		Title:          l.Title,
		SubtitleFormat: l.SubtitleFormat,
		TOCTitle:       l.TOCTitle,
		FootnoteFormat: l.FootnoteFormat,
		PageFormat:     l.PageFormat,
		Disclaimer:     l.Disclaimer,
	}, s.policy)
	a.Now = func() time.Time { return s.now() }
	return a
}

// SchemaFromConfig returns the configured column layout, or nil when the
// per-mode default applies.
func SchemaFromConfig(cfg *config.ReportConfig) (*report.Schema, error) {
	if len(cfg.Columns) > 0 {
		schema := report.Schema{Name: "custom", Columns: make([]report.Column, len(cfg.Columns))}
		for i, c := range cfg.Columns {
			field, err := models.ParseField(c.Field)
			if err != nil {
				return nil, err
			}
			kind := report.KindText
			if field.IsMetric() {
				kind = report.KindReturn
			}
			if c.Kind != "" {
				if kind, err = report.ParseMetricKind(c.Kind); err != nil {
					return nil, err
				}
			}
			schema.Columns[i] = report.Column{
				Field:      field,
				Label:      c.Label,
				Kind:       kind,
				Width:      c.Width,
				Emphasized: c.Emphasized,
				Align:      report.ParseAlign(c.Align),
			}
		}
		if err := schema.Validate(); err != nil {
			return nil, err
		}
		return &schema, nil
	}
	if cfg.Schema != "" {
		schema, err := report.SchemaByName(cfg.Schema)
		if err != nil {
			return nil, err
		}
		return &schema, nil
	}
	return nil, nil
}

// Options resolves a request against configuration into pipeline options.
// Bad request values are reported as models.ErrInvalidRequest.
func (s *ReportService) Options(req Request) (report.Options, error) {
	opts, err := s.options(req)
	if err != nil {
		return report.Options{}, fmt.Errorf("%w: %w", models.ErrInvalidRequest, err)
	}
	return opts, nil
}

func (s *ReportService) options(req Request) (report.Options, error) {
	modeName := req.Mode
	if modeName == "" {
		modeName = s.cfg.Mode
	}
	mode, err := report.ParseMode(modeName)
	if err != nil {
		return report.Options{}, err
	}
	opts := report.DefaultOptions(mode)
	if s.schema != nil {
		opts.Schema = *s.schema
	}
	if s.cfg.GroupField != "" {
		if opts.GroupField, err = models.ParseField(s.cfg.GroupField); err != nil {
			return report.Options{}, err
		}
	}

	sortField := req.SortField
	if sortField == "" {
		sortField = s.cfg.SortField
	}
	if sortField != "" {
		if opts.SortField, err = models.ParseField(sortField); err != nil {
			return report.Options{}, err
		}
		if !opts.SortField.IsMetric() {
			return report.Options{}, fmt.Errorf("sort field %q is not a metric: %w", sortField, models.ErrUnknownField)
		}
	}

	direction := req.Direction
	if direction == "" {
		direction = s.cfg.SortDirection
	}
	if direction != "" {
		if opts.Direction, err = report.ParseSortDirection(direction); err != nil {
			return report.Options{}, err
		}
	}
	return opts, nil
}

// Records loads a snapshot from the record source, filtered to one strategy
// when requested.
func (s *ReportService) Records(ctx context.Context, strategy string) ([]models.FundRecord, error) {
	start := time.Now()
	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		metrics.RecordSourceLoad(s.repo.Name(), "failure")
		s.log.LogSourceFailure(s.repo.Name(), err)
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	metrics.RecordSourceLoad(s.repo.Name(), "success")
	s.log.LogSourceLoaded(s.repo.Name(), len(records), time.Since(start))

	if strategy != "" {
		field := models.FieldStrategy
		if f, err := models.ParseField(s.cfg.GroupField); err == nil {
			field = f
		}
		records = report.FilterByGroup(records, field, strategy)
	}
	return records, nil
}

// BuildDocument loads records and assembles a document for req.
func (s *ReportService) BuildDocument(ctx context.Context, req Request) (report.Document, []models.FundRecord, error) {
	opts, err := s.Options(req)
	if err != nil {
		return report.Document{}, nil, err
	}
	records, err := s.Records(ctx, req.Strategy)
	if err != nil {
		return report.Document{}, nil, err
	}
	return s.pipeline.Build(records, opts), records, nil
}

// Export renders req in format f and writes it to w. Nothing is written when
// loading or rendering fails.
func (s *ReportService) Export(ctx context.Context, req Request, f Format, w io.Writer) (ExportResult, error) {
	start := time.Now()
	mode := req.Mode
	if mode == "" {
		mode = s.cfg.Mode
	}

	doc, records, err := s.BuildDocument(ctx, req)
	if err != nil {
		metrics.RecordReportBuild(mode, string(f), "failure", time.Since(start).Seconds(), 0)
		return ExportResult{}, err
	}

	var buf bytes.Buffer
	if err := s.render(doc, records, f, &buf); err != nil {
		metrics.RecordReportBuild(string(doc.Mode), string(f), "failure", time.Since(start).Seconds(), 0)
		return ExportResult{}, fmt.Errorf("failed to render %s: %w", f, err)
	}

	elapsed := time.Since(start)
	metrics.RecordReportBuild(string(doc.Mode), string(f), "success", elapsed.Seconds(), doc.RecordCount())
	s.log.LogReportBuilt(doc.ID.String(), string(doc.Mode), len(doc.Sections), doc.RecordCount(), elapsed)

	n, err := buf.WriteTo(w)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to write %s: %w", f, err)
	}
	return ExportResult{
		ReportID: doc.ID.String(),
		Format:   f,
		Filename: Filename(s.cfg.FilenamePrefix, f, doc.GeneratedAt),
		Bytes:    n,
		Records:  doc.RecordCount(),
	}, nil
}

func (s *ReportService) render(doc report.Document, records []models.FundRecord, f Format, w io.Writer) error {
	switch f {
	case FormatPDF:
		return s.pdf.Render(doc, w)
	case FormatXLSX:
		return render.SpreadsheetWriter{SheetName: s.cfg.SheetName}.Write(report.DumpRecords(records), w)
	case FormatMarkdown:
		return render.MarkdownRenderer{}.Render(doc, w)
	case FormatHTML:
		return s.html.Render(doc, w)
	case FormatChart:
		return s.renderChart(doc, records, w)
	}
	return fmt.Errorf("unknown export format %q", f)
}

func (s *ReportService) renderChart(doc report.Document, records []models.FundRecord, w io.Writer) error {
	field, err := models.ParseField(s.cfg.ChartField)
	if err != nil || !field.IsMetric() {
		field = models.FieldYTD
	}
	kind := report.KindReturn
	if field == models.FieldMaxDrawdown {
		kind = report.KindDrawdown
	}
	return s.chart.Render(render.Chart{
		Title:    fmt.Sprintf("%s - %s", doc.Title, chartLabel(field)),
		Subtitle: doc.Subtitle,
		Footer:   doc.PageFooter(1),
		Points:   report.ChartSeries(records, field, kind),
		Policy:   s.policy,
	}, w)
}

func chartLabel(field models.Field) string {
	for _, c := range report.ExtendedSchema.Columns {
		if c.Field == field {
			return c.Label
		}
	}
	return string(field)
}

// Ping checks the record source.
func (s *ReportService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// SourceName names the record source.
func (s *ReportService) SourceName() string {
	return s.repo.Name()
}
