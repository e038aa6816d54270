package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/fingerprint"
	"github.com/privascan/privascan/internal/intel"
	"github.com/privascan/privascan/internal/model"
	"github.com/privascan/privascan/internal/privacy"
)

// ErrNoInput is returned when a report carries no scan payload.
var ErrNoInput = errors.New("pipeline: report has no scan input")

// IdentityStep assigns the scan ID and derives the visitor ID and the
// history subject from the payload. It runs first so that later steps and
// log lines can reference a stable identity.
type IdentityStep struct{}

// NewIdentityStep creates an IdentityStep.
func NewIdentityStep() *IdentityStep {
	return &IdentityStep{}
}

// Name returns the step name.
func (s *IdentityStep) Name() string { return "identity" }

// Do assigns the identifiers. The subject falls back from the payload
// label to the visitor ID to the scan ID, so every report ends up with a
// non-empty history key.
func (s *IdentityStep) Do(_ context.Context, report *model.ScanReport) error {
	if report.Input == nil {
		return ErrNoInput
	}

	report.ScanID = fingerprint.ScanID()
	if report.Input.Signals != nil {
		report.VisitorID = fingerprint.VisitorID(report.Input.Signals, report.Input.IP)
	}

	switch {
	case report.Input.Subject != "":
		report.Subject = report.Input.Subject
	case report.VisitorID != "":
		report.Subject = report.VisitorID
	default:
		report.Subject = report.ScanID
	}
	return nil
}

// UniquenessStep scores the fingerprint signals and aggregates them into
// a uniqueness result. A payload without signals is left alone; the
// privacy engine treats the absent result as zero resistance.
type UniquenessStep struct {
	scorer     *fingerprint.Scorer
	aggregator *fingerprint.Aggregator
}

// NewUniquenessStep creates a UniquenessStep using the given scoring
// tables.
func NewUniquenessStep(scoring config.Scoring) *UniquenessStep {
	return &UniquenessStep{
		scorer:     fingerprint.NewScorer(scoring),
		aggregator: fingerprint.NewAggregator(scoring),
	}
}

// Name returns the step name.
func (s *UniquenessStep) Name() string { return "uniqueness" }

// Do evaluates the fingerprint when signals are present.
func (s *UniquenessStep) Do(_ context.Context, report *model.ScanReport) error {
	if report.Input == nil {
		return ErrNoInput
	}
	if report.Input.Signals == nil {
		return nil
	}
	report.Uniqueness = s.aggregator.Evaluate(s.scorer, report.Input.Signals)
	return nil
}

// IntelStep merges the payload's pre-fetched intelligence documents into
// one record. A payload without an IP is left alone.
type IntelStep struct {
	confidence config.SourceConfidence
	logger     *slog.Logger
}

// NewIntelStep creates an IntelStep.
func NewIntelStep(confidence config.SourceConfidence, logger *slog.Logger) *IntelStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntelStep{confidence: confidence, logger: logger}
}

// Name returns the step name.
func (s *IntelStep) Name() string { return "intel" }

// Do merges the intelligence documents for the payload's IP.
func (s *IntelStep) Do(ctx context.Context, report *model.ScanReport) error {
	if report.Input == nil {
		return ErrNoInput
	}
	if report.Input.IP == "" {
		return nil
	}

	sources := make([]intel.Source, 0, len(report.Input.IntelSources))
	for _, doc := range report.Input.IntelSources {
		sources = append(sources, intel.NewDocumentSource(doc))
	}

	merger := intel.NewMerger(sources, s.confidence, s.logger)
	record, err := merger.Merge(ctx, report.Input.IP)
	if err != nil {
		return err
	}
	report.Intelligence = record
	return nil
}

// PrivacyStep computes the aggregate privacy score from everything the
// earlier steps produced. It runs last.
type PrivacyStep struct {
	engine *privacy.Engine
}

// NewPrivacyStep creates a PrivacyStep.
func NewPrivacyStep() *PrivacyStep {
	return &PrivacyStep{engine: privacy.NewEngine()}
}

// Name returns the step name.
func (s *PrivacyStep) Name() string { return "privacy" }

// Do computes the privacy score. Absent inputs are handled by the engine
// itself, so this step never fails for a well-formed report.
func (s *PrivacyStep) Do(_ context.Context, report *model.ScanReport) error {
	if report.Input == nil {
		return ErrNoInput
	}
	report.Privacy = s.engine.Calculate(
		report.Intelligence,
		report.Input.DNS,
		report.Input.WebRTC,
		report.Uniqueness,
	)
	return nil
}

// DefaultSteps returns the standard scoring pipeline steps in execution
// order.
func DefaultSteps(scoring config.Scoring, logger *slog.Logger) []Step {
	return []Step{
		NewIdentityStep(),
		NewUniquenessStep(scoring),
		NewIntelStep(scoring.SourceConfidence, logger),
		NewPrivacyStep(),
	}
}
