package fingerprint

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/privascan/privascan/internal/model"
)

// hashDelimiter separates tuple fields before digesting. The pipe is not
// expected in any fingerprint field, so distinct tuples cannot collide by
// concatenation alone.
const hashDelimiter = "|"

// Identifier lengths in hex characters.
const (
	// visitorIDLength truncates the visitor digest for storage
	// compactness. The raised collision risk is an accepted trade-off.
	visitorIDLength = 24

	sessionIDLength = 16
	scanIDLength    = 20
)

// CombinedHash returns the deterministic identity hash for a set of
// fingerprint signals: the fixed field tuple joined by the delimiter,
// digested with SHA-256, lowercase hex encoded.
//
// The field order is part of the identity contract and must never change:
// canvas hash, webgl hash, audio hash, fonts hash, timezone name,
// "WxH" screen resolution, platform, language. Missing fields contribute
// an empty string so that partially collected fingerprints still hash
// stably.
func CombinedHash(signals *model.FingerprintSignals) string {
	parts := []string{
		canvasHash(signals),
		webglHash(signals),
		audioHash(signals),
		fontsHash(signals),
		timezoneName(signals),
		resolution(signals),
		platform(signals),
		language(signals),
	}
	return digest(strings.Join(parts, hashDelimiter))
}

// VisitorID returns the short visitor identifier: the digest of canvas
// hash, webgl hash, platform, and the observed IP, truncated to 24 hex
// characters. It is stable across scans from the same browser and network
// and deliberately coarser than CombinedHash.
func VisitorID(signals *model.FingerprintSignals, ip string) string {
	parts := []string{
		canvasHash(signals),
		webglHash(signals),
		platform(signals),
		ip,
	}
	return digest(strings.Join(parts, hashDelimiter))[:visitorIDLength]
}

// SessionID returns a random 16-hex-character session identifier.
// Uniqueness in practice is all that is required; there is no determinism
// contract.
func SessionID() string {
	return randomHex(sessionIDLength)
}

// ScanID returns a random 20-hex-character scan identifier.
func ScanID() string {
	return randomHex(scanIDLength)
}

// digest returns the lowercase hex SHA-256 of s.
func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// randomHex returns n hex characters from a cryptographically secure RNG.
func randomHex(n int) string {
	b := make([]byte, (n+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:n]
}

func canvasHash(s *model.FingerprintSignals) string {
	if s == nil || s.Canvas == nil {
		return ""
	}
	return s.Canvas.Hash
}

func webglHash(s *model.FingerprintSignals) string {
	if s == nil || s.WebGL == nil {
		return ""
	}
	return s.WebGL.Hash
}

func audioHash(s *model.FingerprintSignals) string {
	if s == nil || s.Audio == nil {
		return ""
	}
	return s.Audio.Hash
}

func fontsHash(s *model.FingerprintSignals) string {
	if s == nil || s.Fonts == nil {
		return ""
	}
	return s.Fonts.Hash
}

func timezoneName(s *model.FingerprintSignals) string {
	if s == nil || s.Timezone == nil {
		return ""
	}
	return s.Timezone.Name
}

func resolution(s *model.FingerprintSignals) string {
	if s == nil || s.Screen == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", s.Screen.Width, s.Screen.Height)
}

func platform(s *model.FingerprintSignals) string {
	if s == nil || s.Navigator == nil {
		return ""
	}
	return s.Navigator.Platform
}

func language(s *model.FingerprintSignals) string {
	if s == nil || s.Navigator == nil {
		return ""
	}
	return s.Navigator.Language
}
