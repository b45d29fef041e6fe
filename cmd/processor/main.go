package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"cdmcli/internal/config"
	"cdmcli/internal/dataprocessing"
	apperrors "cdmcli/internal/errors"
	"cdmcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory for .xlsx extracts (defaults to configured data dir)")
	outDir := flag.String("out", "", "output directory for the CSV artifact (defaults to configured output dir)")
	refFile := flag.String("ref", "", "path to the stronghold reference workbook")
	batchSize := flag.Int("batch-size", 0, "rows per processing batch (defaults to configured batch size)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flag overrides win over env and file config
	if *inDir != "" {
		cfg.Paths.DataDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *refFile != "" {
		cfg.Paths.ReferenceFile = *refFile
	}
	if *batchSize > 0 {
		cfg.Pipeline.BatchSize = *batchSize
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(ctx, "Starting credit/debit memo processing",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("input_dir", cfg.Paths.DataDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.String("reference_file", cfg.Paths.ReferenceFile),
		slog.Int("batch_size", cfg.Pipeline.BatchSize),
		slog.String("target_stronghold", cfg.Pipeline.TargetStronghold))

	pipeline := dataprocessing.NewPipeline(cfg, logger)
	summary, err := pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline run failed", slog.String("error", err.Error()))
		os.Exit(exitCode(err))
	}

	logger.InfoContext(ctx, "Pipeline run succeeded",
		slog.Int("output_rows", summary.OutputRows),
		slog.String("output_path", summary.OutputPath))
	fmt.Printf("Wrote %d rows to %s\n", summary.OutputRows, summary.OutputPath)
}

// exitCode maps the error taxonomy onto distinct process exit codes so
// wrapping scripts can tell configuration problems from data problems.
func exitCode(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return 1
	}
	switch appErr.Type {
	case apperrors.ErrTypeMissingReference, apperrors.ErrTypeNoInputFiles:
		return 2
	case apperrors.ErrTypeSchema:
		return 3
	case apperrors.ErrTypeInvariant:
		return 4
	default:
		return 1
	}
}
