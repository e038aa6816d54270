package fingerprint

import (
	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/model"
)

// Uniqueness risk thresholds. Classification uses strict greater-than
// comparisons: a score of exactly 0.7 is medium, not high. This asymmetry
// with the privacy score thresholds (which are non-strict) is intentional
// and preserved; see DESIGN.md.
const (
	uniquenessCritical = 0.9
	uniquenessHigh     = 0.7
	uniquenessMedium   = 0.5
)

// Aggregator combines per-component uniqueness scores into one overall
// value using the configured weight table.
type Aggregator struct {
	scoring config.Scoring
}

// NewAggregator creates an Aggregator using the given scoring tables.
func NewAggregator(scoring config.Scoring) *Aggregator {
	return &Aggregator{scoring: scoring}
}

// Aggregate returns the weighted mean of the component scores, with the
// weights renormalized over only the components actually present. A
// fingerprint missing a category is therefore neither penalized nor
// boosted by that category's weight. An empty map returns the neutral
// uniqueness value.
func (a *Aggregator) Aggregate(componentScores map[string]float64) float64 {
	if len(componentScores) == 0 {
		return config.NeutralUniqueness
	}

	var weightedSum, weightTotal float64
	for component, score := range componentScores {
		w := a.scoring.Weight(component)
		weightedSum += score * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return config.NeutralUniqueness
	}
	return weightedSum / weightTotal
}

// ClassifyUniqueness maps a uniqueness score to its risk level.
func ClassifyUniqueness(score float64) model.RiskLevel {
	switch {
	case score > uniquenessCritical:
		return model.RiskCritical
	case score > uniquenessHigh:
		return model.RiskHigh
	case score > uniquenessMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Evaluate runs the full uniqueness estimation for a set of signals:
// component scoring, weighted aggregation, identity hash, and risk
// classification. It never fails; absent signal categories simply do not
// contribute.
func (a *Aggregator) Evaluate(scorer *Scorer, signals *model.FingerprintSignals) *model.UniquenessResult {
	scores := scorer.Score(signals)
	uniqueness := a.Aggregate(scores)
	return &model.UniquenessResult{
		CombinedHash:    CombinedHash(signals),
		UniquenessScore: uniqueness,
		ComponentScores: scores,
		RiskLevel:       ClassifyUniqueness(uniqueness),
	}
}
