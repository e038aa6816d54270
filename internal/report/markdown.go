package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/privascan/privascan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScore(md, report)
	w.writeUniqueness(md, report)
	w.writeIntelligence(md, report)
	w.writeVulnerabilities(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Privascan Report")
	md.PlainText("")

	status := "✅ Complete"
	if report.ErrorMessage != "" {
		status = "❌ Error - " + report.ErrorMessage
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Subject", "`" + report.Subject + "`"},
			{"Scan ID", "`" + report.ScanID + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeScore writes the privacy score section with the breakdown table
// and a severity pie chart.
func (w *MarkdownWriter) writeScore(md *markdown.Markdown, report *model.ScanReport) {
	if report.Privacy == nil {
		return
	}
	p := report.Privacy

	md.H2("Privacy Score")
	md.PlainText("")
	md.PlainTextf("**%d / 100** — risk level **%s**", p.TotalScore, p.RiskLevel)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Dimension", "Score", "Maximum"},
		Rows: [][]string{
			{"IP Privacy", strconv.Itoa(p.Breakdown.IPPrivacy), "20"},
			{"DNS Privacy", strconv.Itoa(p.Breakdown.DNSPrivacy), "15"},
			{"WebRTC Privacy", strconv.Itoa(p.Breakdown.WebRTCPrivacy), "15"},
			{"Fingerprint Resistance", strconv.Itoa(p.Breakdown.FingerprintResistance), "30"},
			{"Browser Config", strconv.Itoa(p.Breakdown.BrowserConfig), "20"},
		},
	})
	md.PlainText("")

	if len(p.Vulnerabilities) > 0 {
		w.writePieChart(md, p)
	}
	w.writeAlert(md, p)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, p *model.PrivacyScore) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, severity := range []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	} {
		if count := p.CountBySeverity(severity); count > 0 {
			chart.LabelAndIntValue(severity.String(), uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the risk level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, p *model.PrivacyScore) {
	switch p.RiskLevel {
	case model.RiskCritical:
		md.Cautionf(
			"Critical privacy exposure. %d finding(s) require immediate attention.",
			len(p.Vulnerabilities),
		)
	case model.RiskHigh:
		md.Warningf(
			"High privacy exposure. %d finding(s) should be addressed.",
			len(p.Vulnerabilities),
		)
	case model.RiskMedium:
		md.Importantf(
			"Moderate privacy exposure. %d finding(s) may reveal identifying information.",
			len(p.Vulnerabilities),
		)
	default:
		md.Tip("Privacy posture looks good. Keep your protections enabled.")
	}
	md.PlainText("")
}

// writeUniqueness writes the fingerprint uniqueness section.
func (w *MarkdownWriter) writeUniqueness(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Fingerprint")
	md.PlainText("")

	if report.Uniqueness == nil {
		md.PlainText("No fingerprint signals collected.")
		md.PlainText("")
		return
	}
	u := report.Uniqueness

	md.PlainTextf("Uniqueness **%.0f%%** — risk level **%s**", u.UniquenessScore*100, u.RiskLevel)
	md.PlainText("")

	rows := make([][]string, 0, len(u.ComponentScores))
	for _, component := range componentOrder {
		if score, ok := u.ComponentScores[component]; ok {
			rows = append(rows, []string{component, fmt.Sprintf("%.2f", score)})
		}
	}
	if len(rows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Component", "Uniqueness"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeIntelligence writes the IP intelligence section.
func (w *MarkdownWriter) writeIntelligence(md *markdown.Markdown, report *model.ScanReport) {
	if report.Intelligence == nil {
		return
	}
	in := report.Intelligence

	md.H2("IP Intelligence")
	md.PlainText("")

	location := "-"
	if in.Location.Country != "" {
		location = in.Location.Country
		if in.Location.City != "" {
			location = in.Location.City + ", " + location
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"IP", "`" + in.IP + "` (" + in.Version + ")"},
			{"Location", location},
			{"Reputation", strconv.Itoa(in.Reputation.Score) + " / 100"},
			{"Confidence", fmt.Sprintf("%.1f", in.Confidence)},
			{"Sources", strings.Join(in.Sources, ", ")},
		},
	})
	md.PlainText("")
}

// writeVulnerabilities writes the findings table grouped by severity.
func (w *MarkdownWriter) writeVulnerabilities(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Findings")
	md.PlainText("")

	if report.Privacy == nil || len(report.Privacy.Vulnerabilities) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		var vulns []model.Vulnerability
		for _, v := range report.Privacy.Vulnerabilities {
			if v.Severity == sev.level {
				vulns = append(vulns, v)
			}
		}
		if len(vulns) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeVulnerabilityTable(md, vulns)
	}
}

// writeVulnerabilityTable writes a table of findings with details.
func (w *MarkdownWriter) writeVulnerabilityTable(md *markdown.Markdown, vulns []model.Vulnerability) {
	rows := make([][]string, len(vulns))
	for i, v := range vulns {
		rows[i] = []string{
			v.Title,
			v.Category,
			truncateString(v.Recommendation, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Finding", "Category", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, v := range vulns {
		if v.Description != "" {
			md.Details(v.Title, v.Description)
		}
	}
	md.PlainText("")
}

// WriteComparison outputs the history comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(result *model.ComparisonResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Privacy Score History")
	md.PlainText("")

	trend := result.Trends.PrivacyScore
	md.PlainTextf("Trend: **%s** (%+d points, %d → %d over %d scans)",
		trend.Direction, trend.Change, trend.FirstScore, trend.LastScore, len(result.Scans))
	md.PlainText("")

	rows := make([][]string, len(result.Scans))
	for i, snap := range result.Scans {
		rows[i] = []string{
			time.UnixMilli(snap.Timestamp).UTC().Format("2006-01-02 15:04"),
			strconv.Itoa(snap.PrivacyScore),
			string(snap.RiskLevel),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Date", "Score", "Risk"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Changes")
	md.PlainText("")
	if len(result.Changes) == 0 {
		md.PlainText("No changes between first and last scan.")
	} else {
		md.BulletList(result.Changes...)
	}
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [privascan](https://github.com/privascan/privascan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
