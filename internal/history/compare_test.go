package history

import (
	"errors"
	"testing"

	"github.com/privascan/privascan/internal/model"
)

func TestCompare_insufficientData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		snapshots []model.Snapshot
	}{
		{"no snapshots", nil},
		{"single snapshot", []model.Snapshot{{ID: "a", Timestamp: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Compare(tt.snapshots); !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Compare() error = %v, want ErrInsufficientData", err)
			}
		})
	}
}

func TestCompare_improvedTrend(t *testing.T) {
	t.Parallel()

	snapshots := []model.Snapshot{
		{ID: "b", Timestamp: 2000, PrivacyScore: 70},
		{ID: "a", Timestamp: 1000, PrivacyScore: 40},
	}

	result, err := Compare(snapshots)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	trend := result.Trends.PrivacyScore
	if trend.Direction != model.TrendImproved {
		t.Errorf("Direction = %q, want %q", trend.Direction, model.TrendImproved)
	}
	if trend.Change != 30 {
		t.Errorf("Change = %d, want 30", trend.Change)
	}
	if trend.FirstScore != 40 || trend.LastScore != 70 {
		t.Errorf("FirstScore/LastScore = %d/%d, want 40/70", trend.FirstScore, trend.LastScore)
	}
	if result.Scans[0].ID != "a" || result.Scans[1].ID != "b" {
		t.Errorf("Scans not sorted ascending by timestamp: %v", result.Scans)
	}
}

func TestCompare_trendDirections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		first, last int
		want        string
	}{
		{"improved", 40, 70, model.TrendImproved},
		{"declined", 70, 40, model.TrendDeclined},
		{"stable", 55, 55, model.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := Compare([]model.Snapshot{
				{Timestamp: 1000, PrivacyScore: tt.first},
				{Timestamp: 2000, PrivacyScore: tt.last},
			})
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if result.Trends.PrivacyScore.Direction != tt.want {
				t.Errorf("Direction = %q, want %q", result.Trends.PrivacyScore.Direction, tt.want)
			}
		})
	}
}

func TestCompare_changes(t *testing.T) {
	t.Parallel()

	first := model.Snapshot{
		Timestamp:             1000,
		PrivacyScore:          40,
		IP:                    "203.0.113.7",
		VPN:                   false,
		FingerprintUniqueness: 0.9,
		DNSLeak:               true,
		WebRTCLeak:            true,
	}
	last := model.Snapshot{
		Timestamp:             2000,
		PrivacyScore:          80,
		IP:                    "198.51.100.9",
		VPN:                   true,
		FingerprintUniqueness: 0.5,
		DNSLeak:               false,
		WebRTCLeak:            false,
	}

	result, err := Compare([]model.Snapshot{first, last})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []string{
		"IP address changed from 203.0.113.7 to 198.51.100.9",
		"VPN enabled",
		"Fingerprint uniqueness decreased by 40 percentage points",
		"DNS leak fixed",
		"WebRTC leak fixed",
	}
	if len(result.Changes) != len(want) {
		t.Fatalf("Changes = %v, want %v", result.Changes, want)
	}
	for i, change := range result.Changes {
		if change != want[i] {
			t.Errorf("Changes[%d] = %q, want %q", i, change, want[i])
		}
	}
}

func TestCompare_noChanges(t *testing.T) {
	t.Parallel()

	snap := model.Snapshot{
		Timestamp:             1000,
		PrivacyScore:          60,
		IP:                    "203.0.113.7",
		VPN:                   true,
		FingerprintUniqueness: 0.5,
	}
	later := snap
	later.Timestamp = 2000
	// movement inside the noise threshold is not reported
	later.FingerprintUniqueness = 0.55

	result, err := Compare([]model.Snapshot{snap, later})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Changes) != 0 {
		t.Errorf("Changes = %v, want empty", result.Changes)
	}
	if result.Trends.PrivacyScore.Direction != model.TrendStable {
		t.Errorf("Direction = %q, want %q", result.Trends.PrivacyScore.Direction, model.TrendStable)
	}
}

func TestCompare_doesNotMutateInput(t *testing.T) {
	t.Parallel()

	snapshots := []model.Snapshot{
		{ID: "b", Timestamp: 2000, PrivacyScore: 70},
		{ID: "a", Timestamp: 1000, PrivacyScore: 40},
	}

	if _, err := Compare(snapshots); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if snapshots[0].ID != "b" {
		t.Error("Compare() reordered the caller's slice")
	}
}
