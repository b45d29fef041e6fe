package dataprocessing

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Processor drives validate -> clean -> enrich over fixed-size slices of the
// unified table so peak memory stays bounded. Batches are independent units
// of failure: a hard failure in any batch aborts the whole run, and the
// reassembled result preserves slice order. With Workers > 1 batches run
// concurrently; the result is identical to the sequential path.
type Processor struct {
	validator  *Validator
	normalizer *Normalizer
	enricher   *Enricher
	batchSize  int
	workers    int
	logger     *slog.Logger
}

// NewProcessor creates a batch processor. batchSize and workers must be
// positive; config validation enforces that upstream.
func NewProcessor(validator *Validator, normalizer *Normalizer, enricher *Enricher, batchSize, workers int, logger *slog.Logger) *Processor {
	return &Processor{
		validator:  validator,
		normalizer: normalizer,
		enricher:   enricher,
		batchSize:  batchSize,
		workers:    workers,
		logger:     logger,
	}
}

// ProcessResult carries the enriched records plus the per-reason drop
// counters accumulated across batches.
type ProcessResult struct {
	Records           []EnrichedMemo
	NonNumericDropped int
	JoinMissDropped   int
}

// ProcessInBatches partitions the table into contiguous slices of at most
// batchSize rows and processes each through the three stages. Cancellation
// of ctx aborts the run like any other hard failure; no partial output
// escapes.
func (p *Processor) ProcessInBatches(ctx context.Context, table *Table) (*ProcessResult, error) {
	total := table.NumRows()
	numBatches := (total + p.batchSize - 1) / p.batchSize
	if numBatches == 0 {
		numBatches = 1
	}

	p.logger.Info("batch processing started",
		slog.Int("rows", total),
		slog.Int("batches", numBatches),
		slog.Int("batch_size", p.batchSize),
		slog.Int("workers", p.workers))

	results := make([][]EnrichedMemo, numBatches)
	var nonNumeric, joinMisses atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := 0; i < numBatches; i++ {
		start := i * p.batchSize
		end := start + p.batchSize
		if end > total {
			end = total
		}
		batch := table.Slice(start, end)
		batchNum := i

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger := p.logger.With(slog.Int("batch", batchNum+1), slog.Int("batches", numBatches))
			logger.Debug("batch started", slog.Int("rows", batch.NumRows()))

			validated, dropped, err := p.validator.Validate(batch)
			if err != nil {
				return err
			}
			nonNumeric.Add(int64(dropped))

			cleaned, err := p.normalizer.Clean(validated)
			if err != nil {
				return err
			}

			enriched, misses := p.enricher.Enrich(cleaned)
			joinMisses.Add(int64(misses))

			results[batchNum] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []EnrichedMemo
	for _, batch := range results {
		records = append(records, batch...)
	}

	p.logger.Info("batch processing complete",
		slog.Int("rows_in", total),
		slog.Int("rows_out", len(records)))

	return &ProcessResult{
		Records:           records,
		NonNumericDropped: int(nonNumeric.Load()),
		JoinMissDropped:   int(joinMisses.Load()),
	}, nil
}
