// Package server exposes reports over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fund-report/internal/health"
	"github.com/yourusername/fund-report/internal/logger"
	"github.com/yourusername/fund-report/internal/metrics"
	"github.com/yourusername/fund-report/internal/models"
	"github.com/yourusername/fund-report/internal/service"
)

//go:embed static/index.html
var static embed.FS

const shutdownTimeout = 10 * time.Second

// Reporter loads records and renders exports.
type Reporter interface {
	Records(ctx context.Context, strategy string) ([]models.FundRecord, error)
	Export(ctx context.Context, req service.Request, f service.Format, w io.Writer) (service.ExportResult, error)
}

// Config holds the HTTP server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MetricsPath mounts the Prometheus handler when non-empty.
	MetricsPath string
}

// Server serves the index page, record data and report exports.
type Server struct {
	cfg      Config
	reporter Reporter
	checker  *health.Checker
	logger   *logrus.Logger
	log      *logger.ReportLogger
	mux      *http.ServeMux
}

// New creates a server and registers its routes.
func New(cfg Config, reporter Reporter, checker *health.Checker, log *logrus.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		reporter: reporter,
		checker:  checker,
		logger:   log,
		log:      logger.NewReportLogger(log),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/data", s.handleData)
	s.mux.HandleFunc("GET /api/export/{format}", s.handleExport)
	s.mux.HandleFunc("GET /report", s.handleReport)
	if s.checker != nil {
		s.checker.Register(s.mux)
	}
	if s.cfg.MetricsPath != "" {
		s.mux.Handle(s.cfg.MetricsPath, metrics.Handler())
	}
}

// Handler returns the root handler with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	return s.recoverer(s.requestLogger(s.mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	if s.checker != nil {
		s.checker.SetReady(true)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if s.checker != nil {
		s.checker.SetReady(false)
	}
	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

type dataResponse struct {
	Funds []models.FundRecord `json:"funds"`
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	records, err := s.reporter.Records(r.Context(), r.URL.Query().Get("strategy"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []models.FundRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dataResponse{Funds: records})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := service.ParseFormat(r.PathValue("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.export(w, r, f, "attachment")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, service.FormatHTML, "")
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, f service.Format, disposition string) {
	var buf bytes.Buffer
	res, err := s.reporter.Export(r.Context(), requestFrom(r), f, &buf)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	if disposition != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, res.Filename))
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to write export")
		return
	}
	s.log.LogExportServed(res.ReportID, string(f), res.Filename, n)
}

func requestFrom(r *http.Request) service.Request {
	q := r.URL.Query()
	return service.Request{
		Mode:      q.Get("mode"),
		Strategy:  q.Get("strategy"),
		SortField: q.Get("sort"),
		Direction: q.Get("direction"),
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrSourceUnavailable):
		s.logger.WithError(err).Warn("Record source unavailable")
		http.Error(w, "record source unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.WithError(err).Error("Request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
