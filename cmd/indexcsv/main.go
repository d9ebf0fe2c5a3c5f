// Command indexcsv loads the observation spreadsheet and exports the
// per-entity summary and per-year mean series as CSV/JSON files.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"dtxcli/internal/config"
	"dtxcli/internal/dataset"
	"dtxcli/internal/exporter"
	"dtxcli/internal/infrastructure"
)

func main() {
	var (
		dataFiles []string
		outDir    string
		verbose   bool
	)
	pflag.StringSliceVar(&dataFiles, "data", nil, "candidate data files, tried in order (default: configured candidates)")
	pflag.StringVar(&outDir, "out", "reports", "output directory for exported files")
	pflag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.Logging.Development = true
	logger := infrastructure.InitializeLogger(cfg.Logging)

	if len(dataFiles) == 0 {
		dataFiles = cfg.Data.Files
	}

	ds, err := dataset.NewLoader(dataFiles, logger).Load()
	if err != nil {
		if errors.Is(err, dataset.ErrDataNotFound) {
			logger.Error("no data file found", slog.Any("candidates", dataFiles))
		} else {
			logger.Error("failed to load dataset", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	generator := exporter.NewSummaryGenerator(logger)
	summaries := generator.BuildSummaries(ds)

	summaryPath := filepath.Join(outDir, "entity_summary.csv")
	if err := generator.WriteCSV(summaryPath, summaries); err != nil {
		logger.Error("failed to write entity summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	yearlyPath := filepath.Join(outDir, "yearly_means.csv")
	if err := generator.ExportYearlyMeans(yearlyPath, ds.Rows()); err != nil {
		logger.Error("failed to write yearly means", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("export complete",
		slog.Int("entities", len(summaries)),
		slog.String("summary", summaryPath),
		slog.String("yearly", yearlyPath))
}
