// Package database provides SQLite-based persistence for scan reports and
// the per-subject snapshot history consumed by the comparison engine.
package database
