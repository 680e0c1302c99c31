package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"motordiag/internal/batch"
	"motordiag/internal/config"
	"motordiag/internal/engine"
	"motordiag/internal/ingest"
	"motordiag/internal/logging"
	"motordiag/internal/model"
	"motordiag/internal/report"
)

type runFlags struct {
	source      string
	configPath  string
	mode        string
	axial       string
	rpm         float64
	span        string
	maxRows     int
	orientation string
	logLevel    string
}

func (f *runFlags) register(cmd *cobra.Command, defaultMaxRows int) {
	cmd.Flags().StringVar(&f.source, "source", "", "workbook source: .xlsx, .csv, csv directory, sqlite file, or postgres DSN")
	cmd.Flags().StringVar(&f.configPath, "config", "", "optional config file supplying source path and report directory")
	cmd.Flags().StringVar(&f.mode, "mode", "rms", "diagnosis mode: rms, stddev, or spectral")
	cmd.Flags().StringVar(&f.axial, "axial", "z", "axis aligned with the motor shaft")
	cmd.Flags().Float64Var(&f.rpm, "rpm", 0, "shaft speed in rpm (required for spectral mode)")
	cmd.Flags().StringVar(&f.span, "span", "all", "analysis window: 24h, 7d, or all")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", defaultMaxRows, "cap to the most recent N rows (0 = uncapped)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "mounting orientation tag (informational)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func (f *runFlags) loadConfig() (*config.Config, error) {
	if f.configPath == "" {
		return nil, nil
	}
	return config.Load(config.ResolvePath(f.configPath))
}

func (f *runFlags) resolveSource(cfg *config.Config) (string, error) {
	if f.source != "" {
		return f.source, nil
	}
	if cfg != nil && cfg.Source.Path != "" {
		return cfg.Source.Path, nil
	}
	return "", errors.New("no source: pass --source or set source.path in --config")
}

func (f *runFlags) params() (engine.Params, error) {
	mode, err := model.ParseMode(f.mode)
	if err != nil {
		return engine.Params{}, err
	}
	axial, err := model.ParseAxis(f.axial)
	if err != nil {
		return engine.Params{}, err
	}
	span, err := model.ParseSpan(f.span)
	if err != nil {
		return engine.Params{}, err
	}
	p := engine.Params{
		AxialAxis:   axial,
		Mode:        mode,
		RPM:         f.rpm,
		Span:        span,
		MaxRows:     f.maxRows,
		Orientation: f.orientation,
	}
	return p, p.Validate()
}

func newAnalyzeCmd() *cobra.Command {
	var flags runFlags
	var sheet, pdfPath, csvPath, chartDir string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Diagnose a single asset sheet",
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

			if sheet == "" {
				names, err := wb.SheetNames()
				if err != nil {
					return err
				}
				if len(names) == 0 {
					return fmt.Errorf("source has no sheets")
				}
				sheet = names[0]
			}
			tbl, err := wb.ReadSheet(sheet)
			if err != nil {
				return err
			}
			res, err := engine.Run(tbl, p, logger)
			if err != nil {
				return err
			}
			logger.Info("diagnosis complete",
				"sheet", res.Sheet,
				"sample_rate_hz", res.SampleRate,
				"rows", res.Rows,
				"faults", len(res.Faults),
			)

			summary := &batch.Summary{Sheets: 1, Entries: []model.SheetResult{*res}}
			if err := report.WriteText(os.Stdout, summary); err != nil {
				return err
			}
			if pdfPath == "" && cfg != nil && cfg.Report.OutputDir != "" {
				pdfPath = filepath.Join(cfg.Report.OutputDir, "diagnosis_"+res.Sheet+".pdf")
			}
			if pdfPath != "" {
				if err := report.WriteSheetPDF(pdfPath, res); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
			}
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteSheetCSV(f, res); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
			}
			if chartDir != "" && p.Mode == model.ModeSpectral {
				if err := writeCharts(chartDir, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd, 0)
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a pdf report to this path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write fault rows as csv to this path")
	cmd.Flags().StringVar(&chartDir, "charts", "", "write per-axis spectrum pngs into this directory (spectral mode)")
	return cmd
}

func writeCharts(dir string, res *model.SheetResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ad := range res.Axes {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", res.Sheet, ad.Axis))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := report.WriteSpectrumPNG(f, res.Sheet, ad); err != nil {
			_ = f.Close()
			return fmt.Errorf("write chart %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
