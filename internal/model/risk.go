package model

// RiskLevel classifies an overall exposure level.
// It is serialized as a plain lowercase string because scan payloads and
// reports are shared with browser-side consumers.
type RiskLevel string

// Risk levels from least to most exposed.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Valid reports whether the risk level is one of the defined constants.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Severity represents the impact level of a single vulnerability finding.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed, and Vulnerability carries a
// SeverityText field for JSON consumers.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct impact.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited privacy impact.
	SeverityLow

	// SeverityMedium indicates moderate issues that warrant attention.
	// Example: browsing without any VPN or proxy protection.
	SeverityMedium

	// SeverityHigh indicates serious issues that significantly increase
	// exposure. Example: a partial DNS leak past the configured resolver.
	SeverityHigh

	// SeverityCritical indicates issues that defeat the user's privacy
	// posture outright. Examples: a full DNS leak, a WebRTC public IP
	// leak, a blacklisted IP address.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}
