package intel

import (
	"testing"

	"github.com/privascan/privascan/internal/model"
)

func TestReputationScore(t *testing.T) {
	t.Parallel()

	clean := func() *model.IPIntelligence {
		return &model.IPIntelligence{
			Location:   model.GeoLocation{Country: "Germany", City: "Berlin"},
			Confidence: 1,
		}
	}

	tests := []struct {
		name   string
		modify func(r *model.IPIntelligence)
		want   int
	}{
		{
			name:   "clean residential address",
			modify: func(_ *model.IPIntelligence) {},
			want:   100,
		},
		{
			name:   "proxy",
			modify: func(r *model.IPIntelligence) { r.Privacy.Proxy = true },
			want:   85,
		},
		{
			name:   "vpn",
			modify: func(r *model.IPIntelligence) { r.Privacy.VPN = true },
			want:   90,
		},
		{
			name:   "tor",
			modify: func(r *model.IPIntelligence) { r.Privacy.Tor = true },
			want:   75,
		},
		{
			name:   "datacenter",
			modify: func(r *model.IPIntelligence) { r.Privacy.Datacenter = true },
			want:   80,
		},
		{
			name:   "relay",
			modify: func(r *model.IPIntelligence) { r.Privacy.Relay = true },
			want:   95,
		},
		{
			name:   "crawler",
			modify: func(r *model.IPIntelligence) { r.Privacy.Crawler = true },
			want:   90,
		},
		{
			name:   "low confidence",
			modify: func(r *model.IPIntelligence) { r.Confidence = 0.4 },
			want:   90,
		},
		{
			name:   "very low confidence stacks both penalties",
			modify: func(r *model.IPIntelligence) { r.Confidence = 0.2 },
			want:   80,
		},
		{
			name:   "missing geolocation",
			modify: func(r *model.IPIntelligence) { r.Location = model.GeoLocation{} },
			want:   90,
		},
		{
			name: "everything bad clamps to zero",
			modify: func(r *model.IPIntelligence) {
				r.Privacy = model.PrivacyFlags{
					VPN: true, Proxy: true, Tor: true,
					Datacenter: true, Relay: true, Crawler: true,
				}
				r.Confidence = 0
				r.Location = model.GeoLocation{}
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record := clean()
			tt.modify(record)
			if got := ReputationScore(record); got != tt.want {
				t.Errorf("ReputationScore() = %d, want %d", got, tt.want)
			}
		})
	}
}
