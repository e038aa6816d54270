package model

import "testing"

// TestGetVulnerabilityInfo tests the vulnerability metadata lookup.
func TestGetVulnerabilityInfo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		vulnType string
		category string
		severity Severity
	}{
		{VulnNoIPProtection, "IP Privacy", SeverityMedium},
		{VulnIPBlacklisted, "IP Reputation", SeverityCritical},
		{VulnDNSLeakFull, "DNS Privacy", SeverityCritical},
		{VulnDNSLeakPartial, "DNS Privacy", SeverityHigh},
		{VulnWebRTCPublicIP, "WebRTC Privacy", SeverityCritical},
		{VulnWebRTCLocalIP, "WebRTC Privacy", SeverityMedium},
	}

	for _, tc := range testCases {
		t.Run(tc.vulnType, func(t *testing.T) {
			t.Parallel()
			info := GetVulnerabilityInfo(tc.vulnType)
			if info.Category != tc.category {
				t.Errorf("category = %q, expected %q", info.Category, tc.category)
			}
			if info.Severity != tc.severity {
				t.Errorf("severity = %v, expected %v", info.Severity, tc.severity)
			}
			if info.Recommendation == "" {
				t.Error("expected a non-empty recommendation")
			}
		})
	}

	t.Run("unknown type defaults to info severity", func(t *testing.T) {
		t.Parallel()
		info := GetVulnerabilityInfo("nonexistent_type")
		if info.Severity != SeverityInfo {
			t.Errorf("severity = %v, expected %v", info.Severity, SeverityInfo)
		}
		if info.Category != "General" {
			t.Errorf("category = %q, expected %q", info.Category, "General")
		}
	})
}

// TestNewVulnerability tests that findings carry the mapped metadata.
func TestNewVulnerability(t *testing.T) {
	t.Parallel()

	v := NewVulnerability(VulnWebRTCPublicIP, "public address 203.0.113.7 exposed")
	if v.Type != VulnWebRTCPublicIP {
		t.Errorf("type = %q, expected %q", v.Type, VulnWebRTCPublicIP)
	}
	if v.Severity != SeverityCritical {
		t.Errorf("severity = %v, expected %v", v.Severity, SeverityCritical)
	}
	if v.SeverityText != "CRITICAL" {
		t.Errorf("severity text = %q, expected %q", v.SeverityText, "CRITICAL")
	}
	if v.Description != "public address 203.0.113.7 exposed" {
		t.Errorf("unexpected description %q", v.Description)
	}
}

// TestCountBySeverity tests the severity counting helper.
func TestCountBySeverity(t *testing.T) {
	t.Parallel()

	score := &PrivacyScore{
		Vulnerabilities: []Vulnerability{
			NewVulnerability(VulnIPBlacklisted, ""),
			NewVulnerability(VulnDNSLeakFull, ""),
			NewVulnerability(VulnWebRTCLocalIP, ""),
		},
	}

	if got := score.CountBySeverity(SeverityCritical); got != 2 {
		t.Errorf("critical count = %d, expected 2", got)
	}
	if got := score.CountBySeverity(SeverityMedium); got != 1 {
		t.Errorf("medium count = %d, expected 1", got)
	}
	if !score.HasCriticalFindings() {
		t.Error("expected critical findings to be reported")
	}

	empty := &PrivacyScore{}
	if empty.HasCriticalFindings() {
		t.Error("expected no critical findings for empty score")
	}
}
