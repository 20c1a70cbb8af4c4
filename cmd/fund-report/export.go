package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/fund-report/internal/service"
)

var (
	exportFormat string
	exportOutput string
	exportReq    requestFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a report to a file",
	Long: `Builds one report and writes it to --output, or to a timestamped file in the
current directory. Use --output - to write to standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := service.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		a, cleanup, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		var buf bytes.Buffer
		res, err := a.reports.Export(cmd.Context(), exportReq.request(), f, &buf)
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		}
		path := exportOutput
		if path == "" {
			path = res.Filename
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf, xlsx, md, html or chart")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path, - for stdout")
	exportReq.bind(exportCmd)
}
