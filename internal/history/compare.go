package history

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/privascan/privascan/internal/model"
)

// ErrInsufficientData is returned when fewer than two snapshots are
// available for comparison.
var ErrInsufficientData = errors.New("history: at least two scans are required for comparison")

// uniquenessChangeThreshold is the minimum absolute fingerprint
// uniqueness delta reported as a change. Smaller movements are noise from
// the banded component scoring.
const uniquenessChangeThreshold = 0.1

// Compare analyzes how a subject's privacy posture evolved across the
// given snapshots. The snapshots are sorted ascending by timestamp; the
// trend and the change list compare the oldest against the newest scan.
// Fewer than two snapshots yields ErrInsufficientData.
func Compare(snapshots []model.Snapshot) (*model.ComparisonResult, error) {
	if len(snapshots) < 2 {
		return nil, ErrInsufficientData
	}

	ordered := make([]model.Snapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	first := ordered[0]
	last := ordered[len(ordered)-1]

	return &model.ComparisonResult{
		Scans:   ordered,
		Changes: describeChanges(first, last),
		Trends: model.Trends{
			PrivacyScore: scoreTrend(first.PrivacyScore, last.PrivacyScore),
		},
	}, nil
}

func scoreTrend(first, last int) model.ScoreTrend {
	direction := model.TrendStable
	switch {
	case last > first:
		direction = model.TrendImproved
	case last < first:
		direction = model.TrendDeclined
	}
	return model.ScoreTrend{
		Direction:  direction,
		Change:     last - first,
		FirstScore: first,
		LastScore:  last,
	}
}

// describeChanges compares the oldest and newest snapshot across the
// fixed change dimensions: IP address, VPN status, fingerprint
// uniqueness, DNS leak, WebRTC leak. Each check is independent, so
// several changes can co-occur.
func describeChanges(first, last model.Snapshot) []string {
	var changes []string

	if first.IP != last.IP {
		changes = append(changes, fmt.Sprintf("IP address changed from %s to %s", first.IP, last.IP))
	}

	if first.VPN != last.VPN {
		if last.VPN {
			changes = append(changes, "VPN enabled")
		} else {
			changes = append(changes, "VPN disabled")
		}
	}

	delta := last.FingerprintUniqueness - first.FingerprintUniqueness
	if math.Abs(delta) > uniquenessChangeThreshold {
		if delta > 0 {
			changes = append(changes, fmt.Sprintf("Fingerprint uniqueness increased by %.0f percentage points", delta*100))
		} else {
			changes = append(changes, fmt.Sprintf("Fingerprint uniqueness decreased by %.0f percentage points", -delta*100))
		}
	}

	if first.DNSLeak != last.DNSLeak {
		if last.DNSLeak {
			changes = append(changes, "DNS leak detected")
		} else {
			changes = append(changes, "DNS leak fixed")
		}
	}

	if first.WebRTCLeak != last.WebRTCLeak {
		if last.WebRTCLeak {
			changes = append(changes, "WebRTC leak detected")
		} else {
			changes = append(changes, "WebRTC leak fixed")
		}
	}

	return changes
}
