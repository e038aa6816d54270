// Package fingerprint implements the fingerprint identity and uniqueness
// estimation: deterministic hash composition over the collected signal
// tuple, per-component uniqueness scoring, and the weighted aggregation
// into a single uniqueness value with a risk classification.
//
// All functions in this package are pure with respect to their inputs
// (identifier generation excepted) and safe for concurrent use.
package fingerprint
