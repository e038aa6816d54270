package model

import (
	"testing"
	"time"
)

// TestScanReportSnapshot tests snapshot derivation from a completed report.
func TestScanReportSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("full report", func(t *testing.T) {
		t.Parallel()

		scanned := time.UnixMilli(1700000000000)
		report := &ScanReport{
			ScanID:      "abc123",
			DateScanned: scanned,
			Input: &ScanInput{
				DNS:    &DNSLeakResult{IsLeak: true, LeakType: DNSLeakPartial},
				WebRTC: &WebRTCLeakResult{IsLeak: false},
			},
			Uniqueness: &UniquenessResult{UniquenessScore: 0.83},
			Intelligence: &IPIntelligence{
				IP:      "198.51.100.4",
				Privacy: PrivacyFlags{VPN: true},
			},
			Privacy: &PrivacyScore{TotalScore: 62, RiskLevel: RiskMedium},
		}

		snap := report.Snapshot()
		if snap.ID != "abc123" {
			t.Errorf("id = %q, expected %q", snap.ID, "abc123")
		}
		if snap.Timestamp != scanned.UnixMilli() {
			t.Errorf("timestamp = %d, expected %d", snap.Timestamp, scanned.UnixMilli())
		}
		if snap.PrivacyScore != 62 || snap.RiskLevel != RiskMedium {
			t.Errorf("score = %d/%s, expected 62/medium", snap.PrivacyScore, snap.RiskLevel)
		}
		if snap.IP != "198.51.100.4" || !snap.VPN {
			t.Errorf("ip/vpn = %q/%v, expected 198.51.100.4/true", snap.IP, snap.VPN)
		}
		if snap.FingerprintUniqueness != 0.83 {
			t.Errorf("uniqueness = %f, expected 0.83", snap.FingerprintUniqueness)
		}
		if !snap.DNSLeak || snap.WebRTCLeak {
			t.Errorf("leaks = %v/%v, expected true/false", snap.DNSLeak, snap.WebRTCLeak)
		}
	})

	t.Run("empty report degrades to zero values", func(t *testing.T) {
		t.Parallel()

		snap := (&ScanReport{ScanID: "x"}).Snapshot()
		if snap.PrivacyScore != 0 || snap.IP != "" || snap.DNSLeak || snap.WebRTCLeak {
			t.Errorf("expected zero-valued snapshot, got %+v", snap)
		}
	})
}
