package model

import "time"

// Source roles determine merge priority and the confidence increment a
// source contributes. The merger consults sources in role order: primary,
// then backup, then asn.
const (
	SourceRolePrimary = "primary"
	SourceRoleBackup  = "backup"
	SourceRoleASN     = "asn"
)

// ScanInput is one scan payload as produced by the client-side collectors.
// It contains only results of collection: fingerprint hashes and metadata,
// leak test outcomes, and pre-fetched intelligence source responses. No
// collection or network lookup happens inside this tool.
type ScanInput struct {
	// Subject is an optional label identifying the scanned browser
	// profile, used as the history key. When empty, the derived visitor
	// ID is used instead.
	Subject string `json:"subject,omitempty"`

	// IP is the public IP address observed by the collector.
	IP string `json:"ip,omitempty"`

	// Signals holds the collected fingerprint signals.
	Signals *FingerprintSignals `json:"signals,omitempty"`

	// DNS holds the DNS leak test result.
	DNS *DNSLeakResult `json:"dns,omitempty"`

	// WebRTC holds the WebRTC leak test result.
	WebRTC *WebRTCLeakResult `json:"webrtc,omitempty"`

	// IntelSources holds the raw per-source intelligence responses
	// fetched by the lookup collaborator, including failed attempts.
	IntelSources []SourceDocument `json:"intelSources,omitempty"`
}

// SourceDocument is one pre-fetched intelligence source response.
// A failed lookup is represented rather than omitted so that the merge can
// account for it in the confidence value.
type SourceDocument struct {
	// Name identifies the source (e.g. "ipdata", "ipapi", "asnlookup").
	Name string `json:"name"`

	// Role is "primary", "backup", or "asn" and fixes both the merge
	// priority and the confidence increment.
	Role string `json:"role"`

	// Failed indicates the lookup errored or timed out. Failed sources
	// contribute nothing to the merge.
	Failed bool `json:"failed,omitempty"`

	// Error is the failure message when Failed is set.
	Error string `json:"error,omitempty"`

	// Data holds the fields this source reported. Unset fields are
	// treated as "not provided" during the merge.
	Data SourceData `json:"data,omitempty"`
}

// SourceData holds the fields an intelligence source may report.
// String fields use "" for "not provided"; boolean and numeric fields use
// pointers so that an explicit false or zero survives the merge.
type SourceData struct {
	Country     string   `json:"country,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
	City        string   `json:"city,omitempty"`
	Region      string   `json:"region,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`

	ASN          string `json:"asn,omitempty"`
	ASNName      string `json:"asnName,omitempty"`
	Organization string `json:"organization,omitempty"`

	VPN        *bool `json:"isVPN,omitempty"`
	Proxy      *bool `json:"isProxy,omitempty"`
	Tor        *bool `json:"isTor,omitempty"`
	Datacenter *bool `json:"isDatacenter,omitempty"`
	Relay      *bool `json:"isRelay,omitempty"`
	Crawler    *bool `json:"isCrawler,omitempty"`

	Blacklisted *bool    `json:"isBlacklisted,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// ScanReport accumulates the outputs of one scoring run. Pipeline steps
// fill it in stage by stage: identity hashes and uniqueness first, then the
// merged intelligence, then the privacy score.
//
// Design decision: We use a single report struct threaded through the
// pipeline rather than per-step result types because later steps consume
// earlier outputs (the privacy score needs both the merged intelligence
// and the uniqueness result) and a shared carrier keeps the step interface
// uniform.
type ScanReport struct {
	// ScanID is the random identifier assigned to this scoring run.
	ScanID string `json:"scanId"`

	// VisitorID is the short identity hash over canvas, webgl, platform
	// and IP. Empty when no signals were collected.
	VisitorID string `json:"visitorId,omitempty"`

	// Subject is the history key for this report: the input subject
	// label when present, otherwise the visitor ID.
	Subject string `json:"subject"`

	// DateScanned is when the scoring run happened.
	DateScanned time.Time `json:"dateScanned"`

	// Input is the scan payload this report was derived from.
	Input *ScanInput `json:"-"`

	// Uniqueness is the fingerprint uniqueness result, nil when the
	// payload carried no fingerprint signals.
	Uniqueness *UniquenessResult `json:"uniqueness,omitempty"`

	// Intelligence is the merged IP intelligence record, nil when the
	// payload carried no IP.
	Intelligence *IPIntelligence `json:"intelligence,omitempty"`

	// Privacy is the aggregate privacy score.
	Privacy *PrivacyScore `json:"privacy,omitempty"`

	// ErrorMessage records a non-fatal step failure, if any.
	ErrorMessage string `json:"error,omitempty"`
}

// NewScanReport creates a report for the given input with the scan time
// set to now.
func NewScanReport(input *ScanInput) *ScanReport {
	return &ScanReport{
		Input:       input,
		DateScanned: time.Now(),
	}
}

// Snapshot derives the persistable scan snapshot from a completed report.
// Missing sections degrade to zero values, matching the scoring engine's
// treatment of absent inputs.
func (r *ScanReport) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        r.ScanID,
		Timestamp: r.DateScanned.UnixMilli(),
	}
	if r.Privacy != nil {
		snap.PrivacyScore = r.Privacy.TotalScore
		snap.RiskLevel = r.Privacy.RiskLevel
	}
	if r.Intelligence != nil {
		snap.IP = r.Intelligence.IP
		snap.VPN = r.Intelligence.Privacy.VPN
	}
	if r.Uniqueness != nil {
		snap.FingerprintUniqueness = r.Uniqueness.UniquenessScore
	}
	if r.Input != nil {
		if r.Input.DNS != nil {
			snap.DNSLeak = r.Input.DNS.IsLeak
		}
		if r.Input.WebRTC != nil {
			snap.WebRTCLeak = r.Input.WebRTC.IsLeak
		}
	}
	return snap
}
