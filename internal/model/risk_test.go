package model

import "testing"

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeverityLow, "LOW"},
		{SeverityMedium, "MEDIUM"},
		{SeverityHigh, "HIGH"},
		{SeverityCritical, "CRITICAL"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels are ordered correctly.
// Info < Low < Medium < High < Critical
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if SeverityInfo >= SeverityLow {
		t.Error("expected SeverityInfo < SeverityLow")
	}
	if SeverityLow >= SeverityMedium {
		t.Error("expected SeverityLow < SeverityMedium")
	}
	if SeverityMedium >= SeverityHigh {
		t.Error("expected SeverityMedium < SeverityHigh")
	}
	if SeverityHigh >= SeverityCritical {
		t.Error("expected SeverityHigh < SeverityCritical")
	}
}

// TestRiskLevelValid tests risk level validation.
func TestRiskLevelValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    RiskLevel
		expected bool
	}{
		{"low", RiskLow, true},
		{"medium", RiskMedium, true},
		{"high", RiskHigh, true},
		{"critical", RiskCritical, true},
		{"empty", RiskLevel(""), false},
		{"unknown", RiskLevel("severe"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.level.Valid() != tc.expected {
				t.Errorf("Valid(%q) = %v, expected %v", tc.level, tc.level.Valid(), tc.expected)
			}
		})
	}
}
