// Package pipeline orchestrates the scoring stages that turn one scan
// payload into a completed report: identity derivation, fingerprint
// uniqueness, intelligence merging, and privacy scoring. A batch
// processor runs the pipeline over many payloads concurrently.
package pipeline
