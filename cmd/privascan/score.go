package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/database"
	"github.com/privascan/privascan/internal/log"
	"github.com/privascan/privascan/internal/model"
	"github.com/privascan/privascan/internal/pipeline"
	"github.com/privascan/privascan/internal/report"
	"github.com/spf13/cobra"
)

// NewScoreCmd creates the score command.
// This command scores one or more collected scan payloads.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [payload-files...]",
		Short: "Score collected scan payloads",
		Long: `Score reads collected scan payloads and produces privacy reports.

Each payload is a JSON file holding the outputs of client-side
collection: fingerprint signals, DNS and WebRTC leak test results, and
pre-fetched IP intelligence responses. Pass "-" to read a single
payload from standard input.

Scored snapshots are saved to the history database so that later runs
can be compared with 'privascan compare'.

Examples:
  # Score a single payload
  privascan score payload.json

  # Score a payload from standard input
  cat payload.json | privascan score -

  # Score many payloads concurrently
  privascan score scans/*.json --batch 8

  # Output JSON report to a file
  privascan score payload.json --json --output report.json

  # Use custom scoring tables
  privascan score payload.json --config .privascan.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScoreCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Path to a scoring configuration file (YAML)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of payloads scored concurrently")
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().Bool("no-save", false,
		"Skip writing snapshots to the history database")

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run cleanly on Ctrl+C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputs, err := loadInputs(cmd.InOrStdin(), cfg.InputFiles)
	if err != nil {
		return err
	}

	reports, err := runScoring(ctx, cfg, logger, inputs)
	if err != nil {
		return err
	}

	if cfg.Save {
		if err := saveReports(ctx, cfg, logger, reports); err != nil {
			return err
		}
	}

	return outputReports(cmd.OutOrStdout(), cfg, reports)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig assembles the configuration from CLI flags and arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.InputFiles = args
	cfg.Verbose = getVerboseFlag(cmd)

	scoringPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if scoringPath != "" {
		scoring, err := config.LoadScoring(scoringPath)
		if err != nil {
			return nil, err
		}
		cfg.ScoringFilePath = scoringPath
		cfg.Scoring = scoring
	}

	batchSize, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	cfg.BatchSize = batchSize

	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport = jsonReport

	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport = markdownReport

	reportFile, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile = reportFile

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.Save = !noSave
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// loadInputs reads and decodes the scan payload files. The file name "-"
// reads a single payload from stdin.
func loadInputs(stdin io.Reader, files []string) ([]*model.ScanInput, error) {
	inputs := make([]*model.ScanInput, 0, len(files))
	for _, file := range files {
		input, err := loadInput(stdin, file)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// loadInput decodes one scan payload.
func loadInput(stdin io.Reader, file string) (*model.ScanInput, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(file) //nolint:gosec // path comes from a CLI argument
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
	}

	var input model.ScanInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse payload %s: %w", file, err)
	}
	return &input, nil
}

// runScoring scores the payloads, sequentially for a single payload and
// through the batch processor otherwise.
func runScoring(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputs []*model.ScanInput) ([]*model.ScanReport, error) {
	newPipeline := func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(pipeline.DefaultSteps(cfg.Scoring, logger)...)
		return p
	}

	if len(inputs) == 1 {
		rpt := model.NewScanReport(inputs[0])
		if err := newPipeline().Execute(ctx, rpt); err != nil {
			return nil, err
		}
		return []*model.ScanReport{rpt}, nil
	}

	processor := pipeline.NewBatchProcessor(newPipeline,
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.BatchSize),
	)
	return processor.ProcessBatch(ctx, inputs)
}

// saveReports persists the scored reports for later comparison.
func saveReports(ctx context.Context, cfg *config.Config, logger *slog.Logger, reports []*model.ScanReport) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, rpt := range reports {
		if err := db.SaveReport(ctx, rpt); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		logger.Debug("saved scan report",
			"subject", rpt.Subject,
			"scan_id", rpt.ScanID)
	}
	return nil
}

// outputReports writes the scored reports in the selected format.
func outputReports(stdout io.Writer, cfg *config.Config, reports []*model.ScanReport) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path comes from a CLI flag
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(output, cfg)
	for _, rpt := range reports {
		if _, err := writer.Write(rpt); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// newReportWriter selects the report writer matching the output flags.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
