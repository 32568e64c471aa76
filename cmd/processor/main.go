package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jstetich/CBEP-OA-1/internal/config"
	"github.com/jstetich/CBEP-OA-1/internal/infrastructure"
	"github.com/jstetich/CBEP-OA-1/internal/operations"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to YAML configuration file (optional)")
	dataDir := flag.String("in", "", "input directory with per-year deployment files (overrides config)")
	reportsDir := flag.String("out", "", "output directory for generated files (overrides config)")
	exclusions := flag.String("exclusions", "", "path to the cleaning policy file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *reportsDir != "" {
		cfg.Paths.ReportsDir = *reportsDir
	}
	if *exclusions != "" {
		cfg.Paths.ExclusionsFile = *exclusions
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting processor", slog.String("version", contracts.FullVersion()))

	policy, err := config.LoadCleaningPolicy(cfg.Paths.ExclusionsFile)
	if err != nil {
		logger.Error("Failed to load cleaning policy",
			slog.String("path", cfg.Paths.ExclusionsFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := operations.NewRegistry()
	runner := operations.NewRunner(registry, logger)
	if err := operations.RegisterStandardSteps(runner); err != nil {
		logger.Error("Failed to register pipeline steps", slog.String("error", err.Error()))
		os.Exit(1)
	}

	state, err := runner.Run(ctx, cfg, policy)
	if err != nil {
		logger.Error("Pipeline run failed",
			slog.String("run_id", state.ID),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Pipeline run completed",
		slog.String("run_id", state.ID),
		slog.Int("observations", len(state.Observations)),
		slog.String("output", cfg.CombinedDataPath()))
}
