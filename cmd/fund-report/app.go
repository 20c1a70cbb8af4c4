package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yourusername/fund-report/internal/metrics"
	"github.com/yourusername/fund-report/internal/render"
	"github.com/yourusername/fund-report/internal/repository"
	"github.com/yourusername/fund-report/internal/service"
)

// app bundles the dependencies shared by the subcommands.
type app struct {
	repo    repository.RecordRepository
	reports *service.ReportService
	fonts   render.RenderingConfig
}

func newApp(ctx context.Context) (*app, func(), error) {
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	repo, cleanup, err := repository.NewRecordRepository(ctx, cfg, appLog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create record source: %w", err)
	}

	fonts := render.FontsFromConfig(cfg.Rendering, runtime.GOOS)
	if !fonts.Unicode() {
		appLog.Warn("No TrueType font found, non-Latin text will not render in PDF output")
	} else {
		appLog.WithField("font", fonts.Face().Regular).Debug("Using TrueType font")
	}

	reports, err := service.NewReportService(repo, &cfg.Report, fonts, appLog)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create report service: %w", err)
	}
	return &app{repo: repo, reports: reports, fonts: fonts}, cleanup, nil
}

// requestFlags binds the report selection flags shared by subcommands.
type requestFlags struct {
	mode      string
	strategy  string
	sortField string
	direction string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Report layout: flat or grouped (default from config)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Only include funds of this strategy")
	cmd.Flags().StringVar(&f.sortField, "sort", "", "Metric field to sort by, e.g. ytd")
	cmd.Flags().StringVar(&f.direction, "direction", "", "Sort direction: ascending or descending")
}

func (f *requestFlags) request() service.Request {
	return service.Request{
		Mode:      f.mode,
		Strategy:  f.strategy,
		SortField: f.sortField,
		Direction: f.direction,
	}
}
