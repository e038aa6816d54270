package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/database"
	"github.com/privascan/privascan/internal/history"
	"github.com/privascan/privascan/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command compares stored scan snapshots for a subject.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [subject]",
		Short: "Compare stored scans for a subject",
		Long: `Compare shows how a subject's privacy posture evolved across scans.

Snapshots are read from the history database and compared oldest to
newest: the privacy score trend, plus changes in IP address, VPN
status, fingerprint uniqueness, and leak test results.

At least two stored scans are required. Use 'privascan score' to score
payloads and save snapshots.

Examples:
  # Compare all stored scans for a subject
  privascan compare laptop

  # List stored snapshots for a subject
  privascan compare --list laptop

  # List all subjects in the database
  privascan compare --list-subjects

  # Output comparison in JSON format
  privascan compare --json laptop`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List stored snapshots for the specified subject")
	cmd.Flags().BoolP("list-subjects", "L", false,
		"List all subjects in the database")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listSubjects, err := cmd.Flags().GetBool("list-subjects")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a missing subject
	// does not hold the lock.
	var subject string
	if !listSubjects {
		if len(args) == 0 {
			return errors.New("subject is required (use --list-subjects to see stored subjects)")
		}
		subject = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listSubjects {
		return listStoredSubjects(ctx, cmd, db)
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listSnapshots(ctx, cmd, db, subject)
	}

	return runComparison(ctx, cmd, db, subject)
}

// listStoredSubjects prints all subjects with stored snapshots.
func listStoredSubjects(ctx context.Context, cmd *cobra.Command, db *database.ScanDB) error {
	subjects, err := db.ListSubjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subjects: %w", err)
	}
	if len(subjects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No subjects in the database")
		return nil
	}
	for _, s := range subjects {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

// listSnapshots prints the stored snapshots for a subject, oldest first.
func listSnapshots(ctx context.Context, cmd *cobra.Command, db *database.ScanDB, subject string) error {
	snapshots, err := db.GetHistory(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored scans for %s\n", subject)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scan history for %s:\n", subject)
	for _, snap := range snapshots {
		ts := time.UnixMilli(snap.Timestamp).UTC().Format("2006-01-02 15:04")
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  score %3d (%s)  scan %s\n",
			ts, snap.PrivacyScore, snap.RiskLevel, snap.ID)
	}
	return nil
}

// runComparison compares all stored snapshots for the subject.
func runComparison(ctx context.Context, cmd *cobra.Command, db *database.ScanDB, subject string) error {
	snapshots, err := db.GetHistory(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	result, err := history.Compare(snapshots)
	if err != nil {
		if errors.Is(err, history.ErrInsufficientData) {
			return fmt.Errorf("%w (found %d scan(s) for %s)", err, len(snapshots), subject)
		}
		return err
	}

	writer, err := newComparisonWriter(cmd)
	if err != nil {
		return err
	}
	if _, err := writer.WriteComparison(result); err != nil {
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	return nil
}

// newComparisonWriter selects the writer matching the output format flags.
func newComparisonWriter(cmd *cobra.Command) (report.Writer, error) {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	switch {
	case jsonOutput:
		return report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint()), nil
	case markdownOutput:
		return report.NewMarkdownWriter(cmd.OutOrStdout()), nil
	default:
		return report.NewSimpleWriter(cmd.OutOrStdout()), nil
	}
}
