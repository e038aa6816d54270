package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "privascan"

	// DefaultBatchSize of 4 concurrent scorings balances throughput with
	// resource usage when many payload files are scored in one run.
	// Scoring is CPU-cheap, so a small limit mostly bounds file handles.
	DefaultBatchSize = 4

	// ConfigFileName is the default scoring configuration file name
	// searched in the current directory and the XDG config directory.
	ConfigFileName = ".privascan.yaml"
)

// Config holds all configuration options for privascan.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// InputFiles is the list of scan payload files to score.
	// "-" means read a single payload from standard input.
	InputFiles []string

	// ScoringFilePath is the path to the scoring configuration file.
	// If empty, built-in defaults are used.
	ScoringFilePath string

	// Scoring holds the scoring tables, either defaults or loaded from
	// ScoringFilePath. Engines receive this by value and never mutate it.
	Scoring Scoring

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of payloads scored concurrently.
	BatchSize int

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for the SQLite snapshot database.
	// When empty, the XDG data directory is used.
	DBDir string

	// Save indicates whether scored snapshots are written to the
	// database for later comparison.
	Save bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Scoring:   DefaultScoring(),
		BatchSize: DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for privascan.
// On Linux: ~/.local/share/privascan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for privascan.
// On Linux: ~/.config/privascan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return ErrNoInput
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return c.Scoring.Validate()
}
