package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fund-report/internal/scheduler"
	"github.com/yourusername/fund-report/internal/service"
)

var publishOnce bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Write the configured report formats to the output directory",
	Long: `Runs the scheduled publisher. With --once a single run is made immediately;
otherwise runs follow scheduler.cron until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		publisher, err := newPublisher(a)
		if err != nil {
			return err
		}

		if publishOnce {
			files, err := publisher.RunOnce(ctx)
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return err
		}

		if err := publisher.Start(); err != nil {
			return err
		}
		appLog.WithField("next_run", publisher.NextRun()).Info("Waiting for scheduled runs")
		<-ctx.Done()
		return publisher.Stop()
	},
}

func init() {
	publishCmd.Flags().BoolVar(&publishOnce, "once", false, "Publish once and exit")
}

func newPublisher(a *app) (*scheduler.Publisher, error) {
	formats := make([]service.Format, 0, len(cfg.Scheduler.Formats))
	for _, name := range cfg.Scheduler.Formats {
		f, err := service.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}

	publisher := scheduler.NewPublisher(a.reports, scheduler.Config{
		OutputDir: cfg.Scheduler.OutputDir,
		Formats:   formats,
	}, appLog)
	if err := publisher.Schedule(cfg.Scheduler.Cron); err != nil {
		return nil, err
	}
	appLog.WithFields(logrus.Fields{
		"cron":       cfg.Scheduler.Cron,
		"output_dir": cfg.Scheduler.OutputDir,
		"formats":    cfg.Scheduler.Formats,
	}).Debug("Publisher configured")
	return publisher, nil
}
