package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no scan payload file is specified.
	ErrNoInput = errors.New("no input specified: provide a scan payload file or '-' for stdin")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidWeight is returned when a component weight is negative or
	// all weights are zero. Negative weights would corrupt the weighted
	// mean; an all-zero table would divide by zero for every input.
	ErrInvalidWeight = errors.New("invalid scoring weights: weights must be non-negative and not all zero")

	// ErrInvalidConfidence is returned when a source confidence increment
	// lies outside [0,1].
	ErrInvalidConfidence = errors.New("invalid source confidence increment: must be within [0,1]")
)
