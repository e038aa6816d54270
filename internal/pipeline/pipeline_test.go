package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/model"
)

// failStep is a test double that always fails.
type failStep struct{}

func (failStep) Do(_ context.Context, _ *model.ScanReport) error {
	return errors.New("boom")
}
func (failStep) Name() string { return "fail" }

// markStep records that it ran.
type markStep struct {
	ran bool
}

func (s *markStep) Do(_ context.Context, _ *model.ScanReport) error {
	s.ran = true
	return nil
}
func (s *markStep) Name() string { return "mark" }

func testInput() *model.ScanInput {
	return &model.ScanInput{
		Subject: "laptop",
		IP:      "203.0.113.7",
		Signals: &model.FingerprintSignals{
			Canvas:    &model.CanvasSignal{Hash: "c4nv4s"},
			WebGL:     &model.WebGLSignal{Hash: "w3bgl"},
			Timezone:  &model.TimezoneSignal{Name: "Europe/Berlin", Offset: -120},
			Screen:    &model.ScreenSignal{Width: 1920, Height: 1080},
			Navigator: &model.NavigatorSignal{Platform: "Win32", Language: "en-US"},
		},
		DNS: &model.DNSLeakResult{LeakType: model.DNSLeakNone, DOHEnabled: true},
		WebRTC: &model.WebRTCLeakResult{
			NATType: model.NATRelay,
		},
		IntelSources: []model.SourceDocument{
			{
				Name: "ipdata",
				Role: model.SourceRolePrimary,
				Data: model.SourceData{Country: "Germany", City: "Berlin"},
			},
			{
				Name:   "ipapi",
				Role:   model.SourceRoleBackup,
				Failed: true,
				Error:  "timeout",
			},
		},
	}
}

func TestPipeline_Execute_fullRun(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(DefaultSteps(config.DefaultScoring(), nil)...)

	report := model.NewScanReport(testInput())
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.ScanID == "" {
		t.Error("ScanID not assigned")
	}
	if report.VisitorID == "" {
		t.Error("VisitorID not derived")
	}
	if report.Subject != "laptop" {
		t.Errorf("Subject = %q, want laptop", report.Subject)
	}
	if report.Uniqueness == nil {
		t.Fatal("Uniqueness not computed")
	}
	if report.Uniqueness.CombinedHash == "" {
		t.Error("combined hash missing")
	}
	if report.Intelligence == nil {
		t.Fatal("Intelligence not merged")
	}
	if report.Intelligence.Location.Country != "Germany" {
		t.Errorf("Country = %q, want Germany", report.Intelligence.Location.Country)
	}
	if len(report.Intelligence.Sources) != 1 {
		t.Errorf("Sources = %v, want only the successful source", report.Intelligence.Sources)
	}
	if report.Privacy == nil {
		t.Fatal("Privacy not computed")
	}
	if report.Privacy.TotalScore < 0 || report.Privacy.TotalScore > 100 {
		t.Errorf("TotalScore = %d, want [0,100]", report.Privacy.TotalScore)
	}
	if len(report.Privacy.Timeline) != 1 {
		t.Errorf("Timeline has %d entries, want 1", len(report.Privacy.Timeline))
	}
}

func TestPipeline_Execute_minimalPayload(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(DefaultSteps(config.DefaultScoring(), nil)...)

	report := model.NewScanReport(&model.ScanInput{})
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.Subject != report.ScanID {
		t.Errorf("Subject = %q, want fallback to scan ID %q", report.Subject, report.ScanID)
	}
	if report.Uniqueness != nil {
		t.Error("Uniqueness computed without signals")
	}
	if report.Intelligence != nil {
		t.Error("Intelligence merged without an IP")
	}
	if report.Privacy == nil {
		t.Fatal("Privacy not computed")
	}
	if report.Privacy.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0 for empty payload", report.Privacy.TotalScore)
	}
	if report.Privacy.RiskLevel != model.RiskCritical {
		t.Errorf("RiskLevel = %q, want critical", report.Privacy.RiskLevel)
	}
}

func TestPipeline_Execute_stopsOnError(t *testing.T) {
	t.Parallel()

	mark := &markStep{}
	p := New()
	p.AddSteps(failStep{}, mark)

	report := model.NewScanReport(testInput())
	if err := p.Execute(context.Background(), report); err == nil {
		t.Fatal("Execute() error = nil, want failure")
	}
	if mark.ran {
		t.Error("later step ran after failure without continueOnError")
	}
	if report.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %q, want boom", report.ErrorMessage)
	}
}

func TestPipeline_Execute_continueOnError(t *testing.T) {
	t.Parallel()

	mark := &markStep{}
	p := New(WithContinueOnError(true))
	p.AddSteps(failStep{}, mark)

	report := model.NewScanReport(testInput())
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v, want nil with continueOnError", err)
	}
	if !mark.ran {
		t.Error("later step did not run with continueOnError")
	}
	if report.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %q, want boom", report.ErrorMessage)
	}
}

func TestPipeline_Execute_cancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New()
	p.AddStep(&markStep{})

	report := model.NewScanReport(testInput())
	if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestPipeline_StepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(DefaultSteps(config.DefaultScoring(), nil)...)

	want := []string{"identity", "uniqueness", "intel", "privacy"}
	names := p.StepNames()
	if len(names) != len(want) {
		t.Fatalf("StepNames() = %v, want %v", names, want)
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("StepNames()[%d] = %q, want %q", i, name, want[i])
		}
	}
	if p.StepCount() != len(want) {
		t.Errorf("StepCount() = %d, want %d", p.StepCount(), len(want))
	}
}

func TestIdentityStep_noInput(t *testing.T) {
	t.Parallel()

	report := &model.ScanReport{}
	if err := NewIdentityStep().Do(context.Background(), report); !errors.Is(err, ErrNoInput) {
		t.Errorf("Do() error = %v, want ErrNoInput", err)
	}
}

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	t.Parallel()

	factory := func() *Pipeline {
		p := New()
		p.AddSteps(DefaultSteps(config.DefaultScoring(), nil)...)
		return p
	}
	bp := NewBatchProcessor(factory, WithConcurrency(2))

	inputs := []*model.ScanInput{
		testInput(),
		{Subject: "phone"},
		{},
	}

	reports, err := bp.ProcessBatch(context.Background(), inputs)
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if len(reports) != len(inputs) {
		t.Fatalf("got %d reports, want %d", len(reports), len(inputs))
	}
	if reports[0].Subject != "laptop" {
		t.Errorf("reports[0].Subject = %q, want laptop (input order preserved)", reports[0].Subject)
	}
	if reports[1].Subject != "phone" {
		t.Errorf("reports[1].Subject = %q, want phone", reports[1].Subject)
	}
	for i, r := range reports {
		if r == nil {
			t.Fatalf("reports[%d] is nil", i)
		}
		if r.Privacy == nil {
			t.Errorf("reports[%d].Privacy is nil", i)
		}
	}
}
