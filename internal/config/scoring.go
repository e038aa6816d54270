package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default scoring table values. They reproduce the production weighting of
// the scoring engine and are documented here as the single place the
// numbers live.
const (
	// DefaultComponentWeight applies to any component name not present
	// in the weight table, so that future signal categories degrade to a
	// moderate contribution instead of being ignored.
	DefaultComponentWeight = 0.10

	// NeutralUniqueness is returned when no components were collected.
	// 0.5 avoids biasing an empty fingerprint toward either extreme and
	// sidesteps a division by zero in the weighted mean.
	NeutralUniqueness = 0.5

	// DefaultPrimaryConfidence is the confidence added by the primary
	// geolocation/threat source.
	DefaultPrimaryConfidence = 0.5

	// DefaultBackupConfidence is the confidence added by the backup
	// geolocation source.
	DefaultBackupConfidence = 0.3

	// DefaultASNConfidence is the confidence added by the ASN-only
	// source.
	DefaultASNConfidence = 0.2
)

// Scoring holds the immutable tables that parameterize the scoring engine:
// component weights, the common screen resolution list, and the per-role
// source confidence increments.
//
// Design decision: These tables are configuration data passed into the
// engines rather than package-level state, so tests can substitute
// alternate tables and concurrent scorings never share mutable state.
type Scoring struct {
	// Weights maps component names to their weight in the uniqueness
	// aggregation. Component names absent from the map fall back to
	// DefaultWeight.
	Weights map[string]float64 `yaml:"weights"`

	// DefaultWeight is the weight for unknown component names.
	DefaultWeight float64 `yaml:"default_weight"`

	// CommonResolutions lists "WxH" screen resolutions shared by large
	// populations. A screen matching one of these scores low uniqueness.
	CommonResolutions []string `yaml:"common_resolutions"`

	// SourceConfidence holds the per-role confidence increments for the
	// intelligence merge.
	SourceConfidence SourceConfidence `yaml:"source_confidence"`
}

// SourceConfidence holds the additive confidence contribution per source
// role. The sum across responding sources is clamped to 1.
type SourceConfidence struct {
	Primary float64 `yaml:"primary"`
	Backup  float64 `yaml:"backup"`
	ASN     float64 `yaml:"asn"`
}

// DefaultScoring returns the production scoring tables.
//
// The component weights reflect relative identifying power: canvas
// rendering differences carry the most entropy, timezone the least.
func DefaultScoring() Scoring {
	return Scoring{
		Weights: map[string]float64{
			"canvas":    0.25,
			"webgl":     0.20,
			"audio":     0.15,
			"fonts":     0.15,
			"timezone":  0.05,
			"screen":    0.10,
			"navigator": 0.10,
		},
		DefaultWeight: DefaultComponentWeight,
		CommonResolutions: []string{
			"1920x1080",
			"1366x768",
			"1536x864",
			"1440x900",
			"2560x1440",
		},
		SourceConfidence: SourceConfidence{
			Primary: DefaultPrimaryConfidence,
			Backup:  DefaultBackupConfidence,
			ASN:     DefaultASNConfidence,
		},
	}
}

// Weight returns the aggregation weight for a component name, falling back
// to the default weight for unknown names.
func (s Scoring) Weight(component string) float64 {
	if w, ok := s.Weights[component]; ok {
		return w
	}
	return s.DefaultWeight
}

// ForRole returns the confidence increment for a source role. Unknown
// roles contribute the ASN increment, the smallest one, so that a payload
// with a mislabeled source still merges instead of erroring.
func (c SourceConfidence) ForRole(role string) float64 {
	switch role {
	case "primary":
		return c.Primary
	case "backup":
		return c.Backup
	default:
		return c.ASN
	}
}

// Validate checks the scoring tables for values that would corrupt the
// weighted mean or the confidence accumulation.
func (s Scoring) Validate() error {
	total := s.DefaultWeight
	if s.DefaultWeight < 0 {
		return ErrInvalidWeight
	}
	for _, w := range s.Weights {
		if w < 0 {
			return ErrInvalidWeight
		}
		total += w
	}
	if total == 0 {
		return ErrInvalidWeight
	}
	for _, c := range []float64{s.SourceConfidence.Primary, s.SourceConfidence.Backup, s.SourceConfidence.ASN} {
		if c < 0 || c > 1 {
			return ErrInvalidConfidence
		}
	}
	return nil
}

// LoadScoring reads scoring tables from a YAML file, starting from the
// defaults so that a partial file only overrides what it names.
func LoadScoring(path string) (Scoring, error) {
	scoring := DefaultScoring()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from a CLI flag
	if err != nil {
		return scoring, fmt.Errorf("failed to read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &scoring); err != nil {
		return scoring, fmt.Errorf("failed to parse scoring config: %w", err)
	}
	if err := scoring.Validate(); err != nil {
		return scoring, err
	}
	return scoring, nil
}
