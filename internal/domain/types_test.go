package domain

import (
	"testing"
)

func TestStatusIsValid(t *testing.T) {
	tests := []struct {
		name     string
		value    Status
		expected bool
	}{
		{"Normal", StatusNormal, true},
		{"Low", StatusLow, true},
		{"High", StatusHigh, true},
		{"Critically Low", StatusCriticallyLow, true},
		{"Critically High", StatusCriticallyHigh, true},
		{"Unknown", StatusUnknown, true},
		{"Skipped", StatusSkipped, true},
		{"Invalid", Status("ELEVATED"), false},
		{"Empty", Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.IsValid() != tt.expected {
				t.Errorf("IsValid(%s): expected %v", tt.value, tt.expected)
			}
		})
	}
}

func TestStatusIsAbnormal(t *testing.T) {
	tests := []struct {
		name     string
		value    Status
		expected bool
	}{
		{"Low", StatusLow, true},
		{"High", StatusHigh, true},
		{"Critically Low", StatusCriticallyLow, true},
		{"Critically High", StatusCriticallyHigh, true},
		{"Normal", StatusNormal, false},
		{"Unknown is degraded not abnormal", StatusUnknown, false},
		{"Skipped is degraded not abnormal", StatusSkipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.IsAbnormal() != tt.expected {
				t.Errorf("IsAbnormal(%s): expected %v", tt.value, tt.expected)
			}
		})
	}
}

func TestRiskLevelRequiresReview(t *testing.T) {
	tests := []struct {
		name     string
		value    RiskLevel
		expected bool
	}{
		{"Low", RiskLow, false},
		{"Moderate", RiskModerate, true},
		{"High", RiskHigh, true},
		{"Unknown level is conservative", RiskLevel("WEIRD"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.RequiresReview() != tt.expected {
				t.Errorf("RequiresReview(%s): expected %v", tt.value, tt.expected)
			}
		})
	}
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Sex
	}{
		{"male", "male", SexMale},
		{"short male", "M", SexMale},
		{"female mixed case", "Female", SexFemale},
		{"short female", "f", SexFemale},
		{"whitespace trimmed", "  male  ", SexMale},
		{"unrecognized", "other", SexUnspecified},
		{"empty", "", SexUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSex(tt.input); got != tt.expected {
				t.Errorf("ParseSex(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
