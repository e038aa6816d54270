package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/privascan/privascan/internal/model"
)

// BatchProcessor handles concurrent scoring of multiple scan payloads.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-scan execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each payload.
	// A factory ensures each scoring run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent scoring runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scoring runs.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each payload to create a
// fresh pipeline instance, so pipeline state never leaks between runs.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scores multiple payloads concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Returns one report per payload in input order, even for payloads whose
// scoring failed; the report records the failure. The error return
// indicates the batch itself was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []*model.ScanInput) ([]*model.ScanReport, error) {
	bp.logger.Debug("starting batch processing",
		"total_payloads", len(inputs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	results := make([]*model.ScanReport, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewScanReport(input)
			p := bp.pipelineFactory()
			err := p.Execute(ctx, report)

			// Store the report regardless of error; it carries the error
			// message when the run failed.
			results[i] = report

			if err != nil {
				bp.logger.Warn("scoring run failed",
					"index", i,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total_payloads", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return results, err
}
