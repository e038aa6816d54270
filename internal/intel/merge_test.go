package intel

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/model"
)

// fakeSource is a test double returning a fixed response or error.
type fakeSource struct {
	name string
	role string
	data *model.SourceData
	err  error
}

func (s *fakeSource) Lookup(_ context.Context, _ string) (*model.SourceData, error) {
	return s.data, s.err
}

func (s *fakeSource) Name() string { return s.name }
func (s *fakeSource) Role() string { return s.role }

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func defaultConf() config.SourceConfidence {
	return config.DefaultScoring().SourceConfidence
}

func TestMerger_Merge_priorityOrder(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{
		name: "ipdata",
		role: model.SourceRolePrimary,
		data: &model.SourceData{
			Country: "Germany",
			VPN:     boolPtr(false),
		},
	}
	backup := &fakeSource{
		name: "ipapi",
		role: model.SourceRoleBackup,
		data: &model.SourceData{
			Country:  "France",
			City:     "Paris",
			VPN:      boolPtr(true),
			Latitude: floatPtr(48.85),
		},
	}

	// Pass sources out of order; NewMerger normalizes to role priority.
	m := NewMerger([]Source{backup, primary}, defaultConf(), nil)
	record, err := m.Merge(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if record.Location.Country != "Germany" {
		t.Errorf("Country = %q, want %q (primary wins)", record.Location.Country, "Germany")
	}
	if record.Location.City != "Paris" {
		t.Errorf("City = %q, want %q (backup fills gaps)", record.Location.City, "Paris")
	}
	if record.Privacy.VPN {
		t.Error("VPN = true, want false: primary's explicit false must not be overwritten")
	}
	if record.Location.Latitude != 48.85 {
		t.Errorf("Latitude = %v, want 48.85", record.Location.Latitude)
	}
	if got, want := record.Sources, []string{"ipdata", "ipapi"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Sources = %v, want %v", got, want)
	}
}

func TestMerger_Merge_confidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sources []Source
		want    float64
	}{
		{
			name:    "no sources",
			sources: nil,
			want:    0,
		},
		{
			name: "primary only",
			sources: []Source{
				&fakeSource{name: "ipdata", role: model.SourceRolePrimary, data: &model.SourceData{}},
			},
			want: 0.5,
		},
		{
			name: "all three roles",
			sources: []Source{
				&fakeSource{name: "ipdata", role: model.SourceRolePrimary, data: &model.SourceData{}},
				&fakeSource{name: "ipapi", role: model.SourceRoleBackup, data: &model.SourceData{}},
				&fakeSource{name: "asnlookup", role: model.SourceRoleASN, data: &model.SourceData{}},
			},
			want: 1,
		},
		{
			name: "clamped to one",
			sources: []Source{
				&fakeSource{name: "a", role: model.SourceRolePrimary, data: &model.SourceData{}},
				&fakeSource{name: "b", role: model.SourceRolePrimary, data: &model.SourceData{}},
				&fakeSource{name: "c", role: model.SourceRoleBackup, data: &model.SourceData{}},
			},
			want: 1,
		},
		{
			name: "failed source contributes nothing",
			sources: []Source{
				&fakeSource{name: "ipdata", role: model.SourceRolePrimary, err: errors.New("timeout")},
				&fakeSource{name: "ipapi", role: model.SourceRoleBackup, data: &model.SourceData{}},
			},
			want: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMerger(tt.sources, defaultConf(), nil)
			record, err := m.Merge(context.Background(), "203.0.113.7")
			if err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			if math.Abs(record.Confidence-tt.want) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", record.Confidence, tt.want)
			}
		})
	}
}

func TestMerger_Merge_failedSourceSkipped(t *testing.T) {
	t.Parallel()

	sources := []Source{
		&fakeSource{name: "ipdata", role: model.SourceRolePrimary, err: errors.New("rate limited")},
		&fakeSource{name: "ipapi", role: model.SourceRoleBackup, data: &model.SourceData{Country: "Japan"}},
	}
	m := NewMerger(sources, defaultConf(), nil)
	record, err := m.Merge(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if record.Location.Country != "Japan" {
		t.Errorf("Country = %q, want %q", record.Location.Country, "Japan")
	}
	if len(record.Sources) != 1 || record.Sources[0] != "ipapi" {
		t.Errorf("Sources = %v, want [ipapi]", record.Sources)
	}
}

func TestMerger_Merge_versionDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ip   string
		want string
	}{
		{"203.0.113.7", model.IPVersion4},
		{"2001:db8::1", model.IPVersion6},
		{"::1", model.IPVersion6},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			t.Parallel()

			m := NewMerger(nil, defaultConf(), nil)
			record, err := m.Merge(context.Background(), tt.ip)
			if err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			if record.Version != tt.want {
				t.Errorf("Version = %q, want %q", record.Version, tt.want)
			}
			if record.IP != tt.ip {
				t.Errorf("IP = %q, want %q", record.IP, tt.ip)
			}
		})
	}
}

func TestMerger_Merge_blacklistAndCategories(t *testing.T) {
	t.Parallel()

	sources := []Source{
		&fakeSource{
			name: "ipdata",
			role: model.SourceRolePrimary,
			data: &model.SourceData{
				Blacklisted: boolPtr(true),
				Categories:  []string{"spam", "scanner"},
			},
		},
	}
	m := NewMerger(sources, defaultConf(), nil)
	record, err := m.Merge(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if !record.Reputation.Blacklisted {
		t.Error("Reputation.Blacklisted = false, want true")
	}
	if len(record.Reputation.Categories) != 2 {
		t.Errorf("Reputation.Categories = %v, want two entries", record.Reputation.Categories)
	}
}

func TestMerger_Merge_cancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMerger(nil, defaultConf(), nil)
	if _, err := m.Merge(ctx, "203.0.113.7"); !errors.Is(err, context.Canceled) {
		t.Errorf("Merge() error = %v, want context.Canceled", err)
	}
}

func TestDocumentSource(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		src := NewDocumentSource(model.SourceDocument{
			Name: "ipdata",
			Role: model.SourceRolePrimary,
			Data: model.SourceData{Country: "Sweden"},
		})
		data, err := src.Lookup(context.Background(), "203.0.113.7")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if data.Country != "Sweden" {
			t.Errorf("Country = %q, want %q", data.Country, "Sweden")
		}
		if src.Name() != "ipdata" || src.Role() != model.SourceRolePrimary {
			t.Errorf("Name/Role = %q/%q, want ipdata/primary", src.Name(), src.Role())
		}
	})

	t.Run("failed document", func(t *testing.T) {
		t.Parallel()

		src := NewDocumentSource(model.SourceDocument{
			Name:   "ipapi",
			Role:   model.SourceRoleBackup,
			Failed: true,
			Error:  "HTTP 429",
		})
		if _, err := src.Lookup(context.Background(), "203.0.113.7"); err == nil || err.Error() != "HTTP 429" {
			t.Errorf("Lookup() error = %v, want HTTP 429", err)
		}
	})

	t.Run("failed document without message", func(t *testing.T) {
		t.Parallel()

		src := NewDocumentSource(model.SourceDocument{Name: "ipapi", Role: model.SourceRoleBackup, Failed: true})
		if _, err := src.Lookup(context.Background(), "203.0.113.7"); err == nil {
			t.Error("Lookup() error = nil, want non-nil")
		}
	})
}
