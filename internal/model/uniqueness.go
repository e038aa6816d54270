package model

// UniquenessResult is the output of the fingerprint uniqueness estimation.
// It pairs the stable identity hash with the weighted uniqueness score and
// the per-component breakdown that produced it.
//
// A new UniquenessResult is produced on every scoring call; the structure
// is never mutated after construction.
type UniquenessResult struct {
	// CombinedHash is the deterministic SHA-256 identity hash over the
	// fixed fingerprint field tuple, lowercase hex encoded.
	CombinedHash string `json:"combinedHash"`

	// UniquenessScore estimates how distinguishable this fingerprint is
	// from the general population, in [0,1]. Higher means more
	// identifiable and therefore worse for privacy.
	UniquenessScore float64 `json:"uniquenessScore"`

	// ComponentScores maps component names (canvas, webgl, audio, fonts,
	// timezone, screen, navigator) to their individual uniqueness scores
	// in [0,1]. Only components present in the input signals have entries.
	ComponentScores map[string]float64 `json:"componentScores"`

	// RiskLevel classifies the uniqueness score: >0.9 critical,
	// >0.7 high, >0.5 medium, otherwise low. Boundaries are strict
	// greater-than comparisons.
	RiskLevel RiskLevel `json:"riskLevel"`
}
