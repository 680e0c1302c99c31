package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"motordiag/internal/batch"
	"motordiag/internal/ingest"
	"motordiag/internal/logging"
	"motordiag/internal/publish"
	"motordiag/internal/report"
)

func newBatchCmd() *cobra.Command {
	var flags runFlags
	var pdfPath, csvPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Diagnose every sheet in a workbook",
		Long: `batch runs the selected diagnosis over all asset sheets. Sheets with
missing columns, unparseable data, or any other per-sheet failure are
skipped and reported; they never abort the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(flags.logLevel)
			p, err := flags.params()
			if err != nil {
				return err
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			source, err := flags.resolveSource(cfg)
			if err != nil {
				return err
			}
			wb, err := ingest.Open(cmd.Context(), source)
			if err != nil {
				return err
			}
			defer wb.Close()

			progress := func(done, total int, sheet string) {
				fmt.Fprintf(os.Stderr, "\rProcessed %d/%d sheets", done, total)
				if done == total {
					fmt.Fprintln(os.Stderr)
				}
			}
			summary, err := batch.Run(cmd.Context(), wb, p, logger, progress)
			if err != nil {
				return err
			}
			if cfg != nil && cfg.Publish.Enabled {
				publisher := publish.New(cfg.Publish, logger)
				defer publisher.Close()
				if err := publisher.PublishRun(cmd.Context(), summary.Entries); err != nil {
					return fmt.Errorf("publish run: %w", err)
				}
			}
			if len(summary.Entries) == 0 && len(summary.Skipped) == 0 {
				fmt.Println("No issues detected in any sheet.")
				return nil
			}
			if err := report.WriteText(os.Stdout, summary); err != nil {
				return err
			}
			if pdfPath == "" && cfg != nil && cfg.Report.OutputDir != "" {
				pdfPath = filepath.Join(cfg.Report.OutputDir, "summary_faults_report.pdf")
			}
			if pdfPath != "" {
				if err := report.WriteSummaryPDF(pdfPath, summary); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
			}
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteCSV(f, summary); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
			}
			return nil
		},
	}
	// Per-sheet cap defaults to 500 rows in batch mode to bound memory
	// and cpu per sheet.
	flags.register(cmd, 500)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the summary pdf report to this path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write all diagnosis rows as csv to this path")
	return cmd
}
