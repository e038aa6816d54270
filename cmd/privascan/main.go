// Package main provides the entry point for the privascan CLI.
//
// Privascan scores browser privacy from collected scan payloads: it
// derives fingerprint identity hashes, rates fingerprint uniqueness,
// merges pre-fetched IP intelligence, and produces a privacy score with
// concrete findings.
//
// Usage:
//
//	privascan score payload.json
//	privascan compare laptop
//
// See --help for all available options.
package main

// main is the entry point for privascan.
func main() {
	Execute()
}
