// Package intel merges IP intelligence from multiple sources into one
// normalized record and derives a reputation score from the merged
// privacy-risk indicators.
//
// Sources are consulted concurrently and the merge waits for all of them
// to settle; a failed source is skipped rather than failing the merge, and
// the accumulated confidence value reflects which sources contributed.
// The actual lookups are the caller's concern: this package only defines
// the Source interface and ships a DocumentSource over pre-fetched
// responses.
package intel
