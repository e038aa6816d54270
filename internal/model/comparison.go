package model

// Snapshot is the minimal persisted view of one completed scan, as stored
// by the snapshot store and consumed by the comparison engine. It carries
// only the fields the comparison needs; the full report is stored
// separately.
type Snapshot struct {
	// ID is the scan identifier assigned when the scan was scored.
	ID string `json:"id"`

	// Timestamp is the scan time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// PrivacyScore is the total privacy score of the scan.
	PrivacyScore int `json:"privacyScore"`

	// RiskLevel is the risk classification of the scan.
	RiskLevel RiskLevel `json:"riskLevel"`

	// IP is the public IP observed during the scan.
	IP string `json:"ip,omitempty"`

	// VPN indicates whether a VPN was detected during the scan.
	VPN bool `json:"vpn"`

	// FingerprintUniqueness is the uniqueness score in [0,1], or 0 when
	// no fingerprint was collected.
	FingerprintUniqueness float64 `json:"fingerprintUniqueness"`

	// DNSLeak indicates whether a DNS leak was detected.
	DNSLeak bool `json:"dnsLeak"`

	// WebRTCLeak indicates whether a WebRTC leak was detected.
	WebRTCLeak bool `json:"webrtcLeak"`
}

// Trend directions used in ScoreTrend.Direction.
const (
	TrendImproved = "improved"
	TrendDeclined = "declined"
	TrendStable   = "stable"
)

// ComparisonResult describes how a subject's privacy posture evolved
// across two or more stored scans. It is derived read-only from the
// snapshots and never persisted itself.
type ComparisonResult struct {
	// Scans lists the compared snapshots ordered by ascending timestamp.
	Scans []Snapshot `json:"scans"`

	// Changes lists human-readable change descriptions between the first
	// and last snapshot, in a fixed evaluation order: IP address, VPN
	// status, fingerprint uniqueness, DNS leak, WebRTC leak.
	Changes []string `json:"changes"`

	// Trends summarizes metric movements between first and last scan.
	Trends Trends `json:"trends"`
}

// Trends groups per-metric trend summaries.
type Trends struct {
	// PrivacyScore tracks the total privacy score movement.
	PrivacyScore ScoreTrend `json:"privacyScore"`
}

// ScoreTrend summarizes how a score moved between the first and last scan.
type ScoreTrend struct {
	// Direction is "improved", "declined", or "stable".
	Direction string `json:"direction"`

	// Change is lastScore minus firstScore.
	Change int `json:"change"`

	// FirstScore is the score of the oldest compared scan.
	FirstScore int `json:"firstScore"`

	// LastScore is the score of the newest compared scan.
	LastScore int `json:"lastScore"`
}
