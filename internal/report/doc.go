// Package report renders completed scan reports and history comparisons
// in multiple output formats: human-readable text, JSON, and Markdown.
package report
