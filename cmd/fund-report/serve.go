package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/fund-report/internal/health"
	"github.com/yourusername/fund-report/internal/scheduler"
	"github.com/yourusername/fund-report/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		checker := health.NewChecker(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Logger:      appLog,
			Source:      a.repo,
		})

		metricsPath := ""
		if cfg.Metrics.Enabled {
			metricsPath = cfg.Metrics.Path
		}
		srv := server.New(server.Config{
			Addr:         cfg.ServerAddr(),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
			MetricsPath:  metricsPath,
		}, a.reports, checker, appLog)

		var publisher *scheduler.Publisher
		if cfg.Scheduler.Enabled {
			if publisher, err = newPublisher(a); err != nil {
				return err
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Run(gctx) })
		if publisher != nil {
			if err := publisher.Start(); err != nil {
				stop()
				return errors.Join(err, g.Wait())
			}
			g.Go(func() error {
				<-gctx.Done()
				return publisher.Stop()
			})
		}

		return ignoreCanceled(g.Wait())
	},
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
