package privacy

import (
	"fmt"
	"time"

	"github.com/privascan/privascan/internal/model"
)

// Sub-score bands and the deductions applied within them. Each band is
// clamped independently before summation, so the total is [0,100] by
// construction.
const (
	ipPrivacyBase = 20

	// penaltyNoProtection applies when none of VPN, Tor, or proxy is
	// active; the remaining IP deductions grade the protection that is.
	penaltyNoProtection = 10
	penaltyVPNOnly      = 2
	penaltyProxyOnly    = 5
	penaltyDatacenterIP = 3
	penaltyPoorRep      = 5
	penaltyWeakRep      = 3
	penaltyBlacklisted  = 10

	poorReputationLimit = 50
	weakReputationLimit = 70

	dnsPrivacyBase  = 15
	dnsPartialScore = 7
	bonusDOH        = 2
	bonusDOT        = 2

	webrtcPrivacyBase = 15
	penaltyLocalIPs   = 5
	penaltyPublicIPs  = 10
	penaltyMDNS       = 3
	penaltyIPv6       = 3
	bonusRelayNAT     = 3

	fingerprintBase = 30
)

// Risk level thresholds for the total score. Boundary values belong to
// the better level: a total of exactly 80 is low risk.
const (
	riskLowMin    = 80
	riskMediumMin = 60
	riskHighMin   = 40
)

// Engine derives privacy scores. It holds no state; one engine is safe
// for concurrent use across scans.
type Engine struct{}

// NewEngine creates a privacy score engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate derives the privacy score for one scan from the merged IP
// intelligence, the leak test results, and the fingerprint uniqueness.
// Any input may be nil; an absent input scores its band as 0. The
// returned score carries exactly one timeline entry stamped with the
// current time.
func (e *Engine) Calculate(intel *model.IPIntelligence, dns *model.DNSLeakResult, webrtc *model.WebRTCLeakResult, uniqueness *model.UniquenessResult) *model.PrivacyScore {
	breakdown := model.ScoreBreakdown{
		IPPrivacy:             ipPrivacyScore(intel),
		DNSPrivacy:            dnsPrivacyScore(dns),
		WebRTCPrivacy:         webrtcPrivacyScore(webrtc),
		FingerprintResistance: fingerprintResistanceScore(uniqueness),
		BrowserConfig:         0, // unassessed server-side
	}
	total := breakdown.IPPrivacy + breakdown.DNSPrivacy + breakdown.WebRTCPrivacy +
		breakdown.FingerprintResistance + breakdown.BrowserConfig

	return &model.PrivacyScore{
		TotalScore:      total,
		RiskLevel:       ClassifyRisk(total),
		Breakdown:       breakdown,
		Vulnerabilities: collectVulnerabilities(intel, dns, webrtc),
		Timeline: []model.TimelineEntry{
			{Timestamp: time.Now().UnixMilli(), Score: total},
		},
	}
}

// ClassifyRisk maps a total privacy score to a risk level.
func ClassifyRisk(total int) model.RiskLevel {
	switch {
	case total >= riskLowMin:
		return model.RiskLow
	case total >= riskMediumMin:
		return model.RiskMedium
	case total >= riskHighMin:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}

// ipPrivacyScore grades the IP exposure in [0,20]. Tor counts as the
// strongest protection, then VPN, then a bare proxy; reputation and
// blacklist status deduct on top.
func ipPrivacyScore(intel *model.IPIntelligence) int {
	if intel == nil {
		return 0
	}
	score := ipPrivacyBase

	switch {
	case !intel.Privacy.VPN && !intel.Privacy.Tor && !intel.Privacy.Proxy:
		score -= penaltyNoProtection
	case intel.Privacy.Tor:
		// best protection, no deduction
	case intel.Privacy.VPN:
		score -= penaltyVPNOnly
	default:
		score -= penaltyProxyOnly
	}

	if intel.Privacy.Datacenter {
		score -= penaltyDatacenterIP
	}

	switch {
	case intel.Reputation.Score < poorReputationLimit:
		score -= penaltyPoorRep
	case intel.Reputation.Score < weakReputationLimit:
		score -= penaltyWeakRep
	}

	if intel.Reputation.Blacklisted {
		score -= penaltyBlacklisted
	}

	return clamp(score, 0, ipPrivacyBase)
}

// dnsPrivacyScore grades DNS exposure in [0,15]. The leak type overrides
// the base outright; the encrypted-DNS bonuses apply after the override,
// so a partial leak with DoH and DoT enabled scores 11, not 7.
func dnsPrivacyScore(dns *model.DNSLeakResult) int {
	if dns == nil {
		return 0
	}
	score := dnsPrivacyBase
	switch dns.LeakType {
	case model.DNSLeakFull:
		score = 0
	case model.DNSLeakPartial:
		score = dnsPartialScore
	}
	if dns.DOHEnabled {
		score += bonusDOH
	}
	if dns.DOTEnabled {
		score += bonusDOT
	}
	return clamp(score, 0, dnsPrivacyBase)
}

// webrtcPrivacyScore grades WebRTC exposure in [0,15]. The leak
// deductions stack independently; a relay-only NAT earns a bonus whether
// or not a leak was found, capped at the band maximum.
func webrtcPrivacyScore(webrtc *model.WebRTCLeakResult) int {
	if webrtc == nil {
		return 0
	}
	score := webrtcPrivacyBase
	if webrtc.IsLeak {
		if len(webrtc.LocalIPs) > 0 {
			score -= penaltyLocalIPs
		}
		if len(webrtc.PublicIPs) > 0 {
			score -= penaltyPublicIPs
		}
		if webrtc.MDNSLeak {
			score -= penaltyMDNS
		}
		if webrtc.IPv6Leak {
			score -= penaltyIPv6
		}
	}
	if webrtc.NATType == model.NATRelay {
		score += bonusRelayNAT
	}
	return clamp(score, 0, webrtcPrivacyBase)
}

// fingerprintResistanceScore grades fingerprint uniqueness in [0,30].
// The uniqueness score is banded as a percentage; boundary values belong
// to the higher (worse) band.
func fingerprintResistanceScore(uniqueness *model.UniquenessResult) int {
	if uniqueness == nil {
		return 0
	}
	pct := uniqueness.UniquenessScore * 100
	switch {
	case pct >= 80:
		return 5
	case pct >= 60:
		return 15
	case pct >= 40:
		return 22
	default:
		return fingerprintBase
	}
}

// collectVulnerabilities raises findings in a fixed evaluation order: IP
// protection, IP reputation, DNS, WebRTC public addresses, WebRTC local
// addresses. Checks are independent; several findings can co-occur.
func collectVulnerabilities(intel *model.IPIntelligence, dns *model.DNSLeakResult, webrtc *model.WebRTCLeakResult) []model.Vulnerability {
	var vulns []model.Vulnerability

	if intel != nil {
		if !intel.Privacy.VPN && !intel.Privacy.Proxy {
			vulns = append(vulns, model.NewVulnerability(model.VulnNoIPProtection,
				fmt.Sprintf("Your IP address %s is directly exposed without VPN or proxy protection.", intel.IP)))
		}
		if intel.Reputation.Blacklisted {
			vulns = append(vulns, model.NewVulnerability(model.VulnIPBlacklisted,
				fmt.Sprintf("Your IP address %s appears on one or more threat lists.", intel.IP)))
		}
	}

	if dns != nil && dns.IsLeak {
		vulnType := model.VulnDNSLeakPartial
		if dns.LeakType == model.DNSLeakFull {
			vulnType = model.VulnDNSLeakFull
		}
		vulns = append(vulns, model.NewVulnerability(vulnType,
			fmt.Sprintf("%d DNS server(s) outside the expected resolution path answered test queries.", len(dns.Servers))))
	}

	if webrtc != nil && webrtc.IsLeak {
		if len(webrtc.PublicIPs) > 0 {
			vulns = append(vulns, model.NewVulnerability(model.VulnWebRTCPublicIP,
				fmt.Sprintf("WebRTC revealed %d public address(es) during ICE gathering.", len(webrtc.PublicIPs))))
		}
		if len(webrtc.LocalIPs) > 0 {
			vulns = append(vulns, model.NewVulnerability(model.VulnWebRTCLocalIP,
				fmt.Sprintf("WebRTC revealed %d local network address(es).", len(webrtc.LocalIPs))))
		}
	}

	return vulns
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
