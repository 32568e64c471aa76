package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jstetich/CBEP-OA-1/internal/config"
	"github.com/jstetich/CBEP-OA-1/internal/exporter"
	"github.com/jstetich/CBEP-OA-1/internal/infrastructure"
	"github.com/jstetich/CBEP-OA-1/internal/stats"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// summaryFields is the set of columns reported on, in output order. It
// matches the columns of the combined data file.
var summaryFields = []string{
	domain.FieldTemp,
	domain.FieldSal,
	domain.FieldCO2,
	domain.FieldCO2Corr,
	domain.FieldDO,
	domain.FieldDOMgPerL,
	domain.FieldPH,
	domain.FieldOmegaA,
	domain.FieldOmegaC,
	domain.FieldAlkalinity,
	domain.FieldCO2Thermal,
}

// omegaThresholds are the aragonite saturation states treated as levels
// of concern: 1.0 is the dissolution threshold, 1.5 a commonly used
// biological stress level.
var omegaThresholds = []float64{1.0, 1.5}

func main() {
	configFile := flag.String("config", "", "path to YAML configuration file (optional)")
	input := flag.String("in", "", "combined data CSV to summarize (overrides config)")
	reportsDir := flag.String("out", "", "output directory for summary files (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *reportsDir != "" {
		cfg.Paths.ReportsDir = *reportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting summary report", slog.String("version", contracts.FullVersion()))

	inputPath := *input
	if inputPath == "" {
		inputPath = cfg.CombinedDataPath()
	}

	logger.Info("Loading combined data", slog.String("path", inputPath))
	obs, err := exporter.LoadCombined(inputPath)
	if err != nil {
		logger.Error("Failed to load combined data", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(obs) == 0 {
		logger.Error("Combined data file contains no observations",
			slog.String("path", inputPath))
		os.Exit(1)
	}
	logger.Info("Loaded observations", slog.Int("count", len(obs)))

	overall := stats.SummarizeFields(obs, summaryFields)
	monthly := stats.SummarizeMonthly(obs, summaryFields)
	daily := stats.SummarizeDaily(obs, summaryFields)
	thresholds := omegaThresholdReport(obs)

	summaryExp := exporter.NewSummaryExporter()

	outputs := []struct {
		name  string
		write func(path string) error
	}{
		{config.SummaryStatsCSV, func(p string) error {
			return summaryExp.ExportSummaryStats(p, overall)
		}},
		{config.MonthlySummaryCSV, func(p string) error {
			return summaryExp.ExportMonthlySummary(p, monthly)
		}},
		{config.DailySummaryCSV, func(p string) error {
			return summaryExp.ExportDailySummary(p, daily)
		}},
		{config.OmegaThresholdsCSV, func(p string) error {
			return summaryExp.ExportOmegaThresholds(p, thresholds)
		}},
		{config.SummaryWorkbook, func(p string) error {
			return exporter.NewWorkbookExporter().Export(p, overall, monthly, thresholds)
		}},
	}

	for _, out := range outputs {
		path := cfg.ReportPath(out.name)
		if err := out.write(path); err != nil {
			logger.Error("Failed to write report",
				slog.String("file", out.name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Wrote report", slog.String("path", path))
	}

	logger.Info("Summary reports complete",
		slog.String("dir", cfg.Paths.ReportsDir),
		slog.Int("files", len(outputs)))
}

// omegaThresholdReport counts threshold crossings of the aragonite
// saturation state on both bases: every hourly observation, and one
// median value per calendar day.
func omegaThresholdReport(obs []domain.Observation) exporter.ThresholdReport {
	raw := stats.FieldValues(obs, domain.FieldOmegaA)
	daily := stats.DailyMedians(obs, domain.FieldOmegaA)

	var report exporter.ThresholdReport
	for _, threshold := range omegaThresholds {
		report.Raw = append(report.Raw, stats.BelowThreshold(raw, threshold))
		report.Daily = append(report.Daily, stats.BelowThreshold(daily, threshold))
	}
	return report
}
