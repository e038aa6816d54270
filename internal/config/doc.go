// Package config holds the runtime configuration for privascan.
//
// It provides the CLI-facing Config struct, the immutable Scoring tables
// (component weights, the common-resolution list, source confidence
// increments, and classification thresholds), YAML loading for the scoring
// tables, and the XDG directory helpers used for the snapshot database.
package config
