package model

// PrivacyScore is the aggregate [0,100] exposure assessment produced by the
// privacy score engine. Higher means better protected.
//
// A PrivacyScore is created fresh on every calculation and never mutated
// afterwards; a new calculation produces a new PrivacyScore.
type PrivacyScore struct {
	// TotalScore is the sum of the five breakdown sub-scores. The
	// sub-score bounds make the total [0,100] by construction.
	TotalScore int `json:"totalScore"`

	// RiskLevel classifies the total: >=80 low, >=60 medium, >=40 high,
	// otherwise critical.
	RiskLevel RiskLevel `json:"riskLevel"`

	// Breakdown holds the five independently bounded sub-scores.
	Breakdown ScoreBreakdown `json:"breakdown"`

	// Vulnerabilities lists the findings raised during calculation, in
	// evaluation order. The engine neither deduplicates nor caps the
	// list; consumers may truncate for presentation.
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`

	// Timeline holds one entry per calculation. The engine appends
	// exactly one entry with the current time; multi-point history is the
	// snapshot store's concern.
	Timeline []TimelineEntry `json:"timeline"`
}

// ScoreBreakdown holds the five privacy sub-scores. Each is clamped to its
// own band before summation.
type ScoreBreakdown struct {
	// IPPrivacy in [0,20] reflects VPN/Tor/proxy protection and IP
	// reputation.
	IPPrivacy int `json:"ipPrivacy"`

	// DNSPrivacy in [0,15] reflects DNS leak status and encrypted DNS.
	DNSPrivacy int `json:"dnsPrivacy"`

	// WebRTCPrivacy in [0,15] reflects WebRTC address leak status.
	WebRTCPrivacy int `json:"webrtcPrivacy"`

	// FingerprintResistance in [0,30] rewards low fingerprint uniqueness.
	FingerprintResistance int `json:"fingerprintResistance"`

	// BrowserConfig is fixed at 0: browser hardening is a client-side
	// signal the engine cannot assess, and the field records that it is
	// unassessed rather than being omitted.
	BrowserConfig int `json:"browserConfig"`
}

// TimelineEntry records one score computation.
type TimelineEntry struct {
	// Timestamp is the computation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Score is the total score at that time.
	Score int `json:"score"`
}

// Vulnerability is a single structured finding raised during privacy
// scoring.
type Vulnerability struct {
	// Type is the finding type identifier. It maps to the
	// vulnerabilityInfoMapping below.
	Type string `json:"type"`

	// Category groups findings by exposure dimension, e.g. "IP Privacy".
	Category string `json:"category"`

	// Severity is the impact level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severityText"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Recommendation provides guidance on how to address the finding.
	Recommendation string `json:"recommendation"`
}

// VulnerabilityInfo contains the metadata for a vulnerability type:
// category, severity, title, and remediation recommendation.
type VulnerabilityInfo struct {
	Category       string
	Severity       Severity
	Title          string
	Recommendation string
}

// Vulnerability type identifiers raised by the privacy score engine.
const (
	VulnNoIPProtection = "ip_no_protection"
	VulnIPBlacklisted  = "ip_blacklisted"
	VulnDNSLeakFull    = "dns_leak_full"
	VulnDNSLeakPartial = "dns_leak_partial"
	VulnWebRTCPublicIP = "webrtc_public_ip"
	VulnWebRTCLocalIP  = "webrtc_local_ip"
)

// vulnerabilityInfoMapping maps vulnerability types to their metadata.
// This centralized mapping ensures consistent categorization and
// recommendations across the application.
//
// Design decision: We use a map rather than embedding metadata at each
// raise site because:
// 1. It provides a single source of truth for severity assignments
// 2. Recommendations can be revised without touching scoring logic
// 3. It makes it easy to generate finding documentation
var vulnerabilityInfoMapping = map[string]VulnerabilityInfo{
	VulnNoIPProtection: {
		Category:       "IP Privacy",
		Severity:       SeverityMedium,
		Title:          "No IP privacy protection",
		Recommendation: "Use a reputable VPN or the Tor network so your real IP address is not exposed to every site you visit.",
	},
	VulnIPBlacklisted: {
		Category:       "IP Reputation",
		Severity:       SeverityCritical,
		Title:          "IP address is blacklisted",
		Recommendation: "Your current IP address appears on threat lists. Switch exit nodes or VPN servers, or contact your provider.",
	},
	VulnDNSLeakFull: {
		Category:       "DNS Privacy",
		Severity:       SeverityCritical,
		Title:          "Full DNS leak detected",
		Recommendation: "All DNS queries bypass your configured resolver. Enable DNS-over-HTTPS or your VPN's DNS servers and disable fallback resolvers.",
	},
	VulnDNSLeakPartial: {
		Category:       "DNS Privacy",
		Severity:       SeverityHigh,
		Title:          "Partial DNS leak detected",
		Recommendation: "Some DNS queries bypass your configured resolver. Check split-tunnel settings and enable encrypted DNS.",
	},
	VulnWebRTCPublicIP: {
		Category:       "WebRTC Privacy",
		Severity:       SeverityCritical,
		Title:          "WebRTC exposes your public IP",
		Recommendation: "WebRTC ICE gathering reveals your real public address even behind a VPN. Disable WebRTC or force relay-only candidates.",
	},
	VulnWebRTCLocalIP: {
		Category:       "WebRTC Privacy",
		Severity:       SeverityMedium,
		Title:          "WebRTC exposes local network addresses",
		Recommendation: "Local addresses aid fingerprinting and network mapping. Enable mDNS candidate obfuscation in your browser.",
	},
}

// GetVulnerabilityInfo returns the metadata for a vulnerability type.
// Unknown types default to an informational finding in the "General"
// category so that raising an unmapped type degrades gracefully.
func GetVulnerabilityInfo(vulnType string) VulnerabilityInfo {
	if info, ok := vulnerabilityInfoMapping[vulnType]; ok {
		return info
	}
	return VulnerabilityInfo{
		Category: "General",
		Severity: SeverityInfo,
		Title:    vulnType,
	}
}

// NewVulnerability builds a Vulnerability of the given type with the
// mapped metadata and the supplied description.
func NewVulnerability(vulnType, description string) Vulnerability {
	info := GetVulnerabilityInfo(vulnType)
	return Vulnerability{
		Type:           vulnType,
		Category:       info.Category,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          info.Title,
		Description:    description,
		Recommendation: info.Recommendation,
	}
}

// CountBySeverity returns how many vulnerabilities carry the given
// severity.
func (p *PrivacyScore) CountBySeverity(s Severity) int {
	count := 0
	for _, v := range p.Vulnerabilities {
		if v.Severity == s {
			count++
		}
	}
	return count
}

// HasCriticalFindings reports whether any critical vulnerability was
// raised.
func (p *PrivacyScore) HasCriticalFindings() bool {
	return p.CountBySeverity(SeverityCritical) > 0
}
