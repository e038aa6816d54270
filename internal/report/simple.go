package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/privascan/privascan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeScore(&sb, report)
	w.writeUniqueness(&sb, report)
	w.writeIntelligence(&sb, report)
	w.writeVulnerabilities(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PRIVASCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Subject:    %s\n", report.Subject))
	sb.WriteString(fmt.Sprintf("Scan ID:    %s\n", report.ScanID))
	sb.WriteString(fmt.Sprintf("Scan Date:  %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:     ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeScore writes the privacy score summary section.
func (w *SimpleWriter) writeScore(sb *strings.Builder, report *model.ScanReport) {
	if report.Privacy == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PRIVACY SCORE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	p := report.Privacy
	sb.WriteString(fmt.Sprintf("  TOTAL:       %d / 100  (risk: %s)\n\n", p.TotalScore, strings.ToUpper(string(p.RiskLevel))))
	sb.WriteString(fmt.Sprintf("  IP Privacy:             %2d / 20\n", p.Breakdown.IPPrivacy))
	sb.WriteString(fmt.Sprintf("  DNS Privacy:            %2d / 15\n", p.Breakdown.DNSPrivacy))
	sb.WriteString(fmt.Sprintf("  WebRTC Privacy:         %2d / 15\n", p.Breakdown.WebRTCPrivacy))
	sb.WriteString(fmt.Sprintf("  Fingerprint Resistance: %2d / 30\n", p.Breakdown.FingerprintResistance))
	sb.WriteString(fmt.Sprintf("  Browser Config:         %2d / 20  (not assessed)\n", p.Breakdown.BrowserConfig))
	sb.WriteString("\n")
}

// writeUniqueness writes the fingerprint uniqueness section.
func (w *SimpleWriter) writeUniqueness(sb *strings.Builder, report *model.ScanReport) {
	if report.Uniqueness == nil {
		if !w.showEmpty {
			return
		}
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString("FINGERPRINT\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n\n  No fingerprint signals collected\n\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINGERPRINT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	u := report.Uniqueness
	sb.WriteString(fmt.Sprintf("  Uniqueness: %.0f%%  (risk: %s)\n", u.UniquenessScore*100, u.RiskLevel))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("  Hash:       %s\n", u.CombinedHash))
		for _, component := range componentOrder {
			if score, ok := u.ComponentScores[component]; ok {
				sb.WriteString(fmt.Sprintf("    %-10s %.2f\n", component, score))
			}
		}
	}
	sb.WriteString("\n")
}

// componentOrder fixes the display order of fingerprint components.
var componentOrder = []string{
	model.ComponentCanvas,
	model.ComponentWebGL,
	model.ComponentAudio,
	model.ComponentFonts,
	model.ComponentTimezone,
	model.ComponentScreen,
	model.ComponentNavigator,
}

// writeIntelligence writes the IP intelligence section.
func (w *SimpleWriter) writeIntelligence(sb *strings.Builder, report *model.ScanReport) {
	if report.Intelligence == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("IP INTELLIGENCE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	in := report.Intelligence
	sb.WriteString(fmt.Sprintf("  IP:         %s (%s)\n", in.IP, in.Version))
	if in.Location.Country != "" {
		location := in.Location.Country
		if in.Location.City != "" {
			location = in.Location.City + ", " + location
		}
		sb.WriteString(fmt.Sprintf("  Location:   %s\n", location))
	}
	if in.Network.Organization != "" {
		sb.WriteString(fmt.Sprintf("  Network:    %s\n", in.Network.Organization))
	}

	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{in.Privacy.VPN, "VPN"},
		{in.Privacy.Proxy, "proxy"},
		{in.Privacy.Tor, "Tor"},
		{in.Privacy.Datacenter, "datacenter"},
		{in.Privacy.Relay, "relay"},
		{in.Privacy.Crawler, "crawler"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		sb.WriteString(fmt.Sprintf("  Flags:      %s\n", strings.Join(flags, ", ")))
	}

	sb.WriteString(fmt.Sprintf("  Reputation: %d / 100\n", in.Reputation.Score))
	sb.WriteString(fmt.Sprintf("  Confidence: %.1f (%d source(s))\n", in.Confidence, len(in.Sources)))
	sb.WriteString("\n")
}

// writeVulnerabilities writes all findings grouped by severity.
func (w *SimpleWriter) writeVulnerabilities(sb *strings.Builder, report *model.ScanReport) {
	if report.Privacy == nil {
		return
	}
	if len(report.Privacy.Vulnerabilities) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Privacy.Vulnerabilities) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	// Findings in order of severity, critical first.
	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		var vulns []model.Vulnerability
		for _, v := range report.Privacy.Vulnerabilities {
			if v.Severity == severity {
				vulns = append(vulns, v)
			}
		}
		if len(vulns) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("[%s] %s\n", severityIndicator(severity), severity.String()))
		for _, v := range vulns {
			sb.WriteString(fmt.Sprintf("  * %s (%s)\n", v.Title, v.Category))
			if w.verbose && v.Description != "" {
				sb.WriteString(fmt.Sprintf("    Detail: %s\n", v.Description))
			}
			if v.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("    Fix: %s\n", v.Recommendation))
			}
		}
		sb.WriteString("\n")
	}
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// WriteComparison outputs the history comparison in human-readable
// format.
func (w *SimpleWriter) WriteComparison(result *model.ComparisonResult) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       PRIVACY SCORE HISTORY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	trend := result.Trends.PrivacyScore
	sb.WriteString(fmt.Sprintf("Trend:  %s (%+d points, %d -> %d)\n", strings.ToUpper(trend.Direction), trend.Change, trend.FirstScore, trend.LastScore))
	sb.WriteString(fmt.Sprintf("Scans:  %d\n\n", len(result.Scans)))

	for _, snap := range result.Scans {
		ts := time.UnixMilli(snap.Timestamp).UTC().Format("2006-01-02 15:04")
		sb.WriteString(fmt.Sprintf("  %s  score %3d  risk %s\n", ts, snap.PrivacyScore, snap.RiskLevel))
	}
	sb.WriteString("\n")

	if len(result.Changes) == 0 {
		sb.WriteString("No changes between first and last scan.\n")
	} else {
		sb.WriteString("Changes:\n")
		for _, change := range result.Changes {
			sb.WriteString(fmt.Sprintf("  * %s\n", change))
		}
	}
	sb.WriteString("\n")
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by privascan\n")
	sb.WriteString("https://github.com/privascan/privascan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
