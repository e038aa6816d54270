// Package model defines the data structures exchanged between the scoring
// engine, the CLI, and the report writers.
//
// The package contains the fingerprint signal inputs, the merged IP
// intelligence record, the DNS/WebRTC leak inputs, the privacy score
// output, and the snapshot/comparison types used for scan history.
// All structures are plain data with JSON tags; the scoring logic itself
// lives in the fingerprint, intel, privacy, and history packages.
package model
