package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
	"cdmcli/internal/exporter"
	"cdmcli/internal/files"
)

// Pipeline wires the stages together for one full run: unify the sources,
// process them in batches, filter to the target region, engineer the
// targets and write the output artifact. Each run is a stateless
// recomputation over the currently available input files.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline for the given configuration.
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// RunSummary carries the observability counters of one completed run.
type RunSummary struct {
	FilesRead         int
	RowsLoaded        int
	DuplicatesRemoved int
	NonNumericDropped int
	JoinMissDropped   int
	RegionExcluded    int
	OutputRows        int
	OutputPath        string
}

// Run executes the whole pipeline. On any fatal error the run terminates
// before the output artifact is written; cancellation of ctx behaves the
// same way.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	strongholds, err := LoadStrongholdMap(p.cfg.Paths.ReferenceFile, p.logger)
	if err != nil {
		return nil, err
	}

	discovery := files.NewDiscovery(p.cfg.Paths.DataDir, p.cfg.Paths.ReferenceFile)
	unifier := NewUnifier(discovery, p.cfg.Pipeline.SourceSheet, &p.cfg.Rules, p.logger)
	unified, err := unifier.LoadAndMergeSources()
	if err != nil {
		return nil, err
	}

	processor := NewProcessor(
		NewValidator(&p.cfg.Rules, p.logger),
		NewNormalizer(&p.cfg.Rules, p.logger),
		NewEnricher(strongholds, &p.cfg.Rules, p.logger),
		p.cfg.Pipeline.BatchSize,
		p.cfg.Pipeline.Workers,
		p.logger,
	)
	processed, err := processor.ProcessInBatches(ctx, unified.Table)
	if err != nil {
		return nil, err
	}

	regional := NewRegionalFilter(p.cfg.Pipeline.TargetStronghold, p.logger).Apply(processed.Records)
	output := NewTargetEngineer(&p.cfg.Rules, p.logger).Apply(regional)

	rows := make([][]string, 0, len(output))
	for _, rec := range output {
		rows = append(rows, rec.CSVRow())
	}

	outputPath := filepath.Join(p.cfg.Paths.OutputDir, p.cfg.Pipeline.OutputFile)
	if err := exporter.NewCSVWriter().WriteSimpleCSV(outputPath, OutputHeader(), rows); err != nil {
		return nil, apperrors.NewStorageError("failed to write output artifact", err)
	}

	summary := &RunSummary{
		FilesRead:         unified.FilesRead,
		RowsLoaded:        unified.RowsLoaded,
		DuplicatesRemoved: unified.DuplicatesRemoved,
		NonNumericDropped: processed.NonNumericDropped,
		JoinMissDropped:   processed.JoinMissDropped,
		RegionExcluded:    len(processed.Records) - len(regional),
		OutputRows:        len(output),
		OutputPath:        outputPath,
	}

	p.logger.Info("pipeline complete",
		slog.Int("files_read", summary.FilesRead),
		slog.Int("rows_loaded", summary.RowsLoaded),
		slog.Int("duplicates_removed", summary.DuplicatesRemoved),
		slog.Int("non_numeric_dropped", summary.NonNumericDropped),
		slog.Int("join_miss_dropped", summary.JoinMissDropped),
		slog.Int("region_excluded", summary.RegionExcluded),
		slog.Int("output_rows", summary.OutputRows),
		slog.String("output_path", summary.OutputPath))

	return summary, nil
}
