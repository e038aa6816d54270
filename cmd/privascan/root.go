// Package main provides the entry point for the privascan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for privascan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privascan",
		Short: "Privacy scoring for collected browser scan payloads",
		Long: `Privascan scores browser privacy from collected scan payloads.

A payload holds the outputs of client-side collection: fingerprint
signals, DNS and WebRTC leak test results, and pre-fetched IP
intelligence responses. Privascan derives identity hashes, rates
fingerprint uniqueness, merges the intelligence sources, and produces
a 0-100 privacy score with concrete findings.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
