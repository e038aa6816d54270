// Package history compares stored scan snapshots over time.
//
// The comparison engine takes two or more snapshots of the same subject,
// orders them by scan time, and reports the privacy score trend together
// with human-readable descriptions of what changed between the oldest and
// the newest scan.
package history
