package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labsense/risk-engine/internal/domain"
)

func TestNormalizeTestName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple lowercase", "hemoglobin", "hemoglobin"},
		{"mixed case", "Hemoglobin", "hemoglobin"},
		{"spaces collapse to underscore", "Total Bilirubin", "total_bilirubin"},
		{"punctuation run collapses once", "SGPT (ALT)", "sgpt_alt"},
		{"leading and trailing trimmed", "  (eGFR)  ", "egfr"},
		{"digits preserved", "Vitamin B12", "vitamin_b12"},
		{"empty input", "", ""},
		{"only punctuation", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTestName(tt.input))
		})
	}
}

func TestCleanNumericString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number untouched", "13.5", "13.5"},
		{"thousands separator stripped", "1,50,000", "150000"},
		{"whitespace trimmed", " 98 ", "98"},
		{"scientific notation untouched", "1.2e3", "1.2e3"},
		{"empty identity", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanNumericString(tt.input))
		})
	}
}

func TestParseNumericValue(t *testing.T) {
	preParsed := 42.5

	tests := []struct {
		name     string
		record   domain.TestRecord
		expected *float64
	}{
		{
			name:     "numeric_value takes precedence",
			record:   domain.TestRecord{Value: "99", NumericValue: &preParsed},
			expected: &preParsed,
		},
		{
			name:     "textual value parsed",
			record:   domain.TestRecord{Value: "13.5"},
			expected: floatPtr(13.5),
		},
		{
			name:     "comma thousands cleaned",
			record:   domain.TestRecord{Value: "2,50,000"},
			expected: floatPtr(250000),
		},
		{
			name:     "non-numeric degrades to nil",
			record:   domain.TestRecord{Value: "positive"},
			expected: nil,
		},
		{
			name:     "empty value degrades to nil",
			record:   domain.TestRecord{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumericValue(&tt.record)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.InDelta(t, *tt.expected, *got, 1e-9)
			}
		})
	}
}

func TestParseRangeText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		low     float64
		high    float64
		ok      bool
		openTop bool
	}{
		{name: "simple hyphen", input: "70 - 100", low: 70, high: 100, ok: true},
		{name: "no spaces", input: "70-100", low: 70, high: 100, ok: true},
		{name: "en dash", input: "13.5 – 17.5", low: 13.5, high: 17.5, ok: true},
		{name: "comma thousands", input: "1,50,000 - 4,00,000", low: 150000, high: 400000, ok: true},
		{name: "greater-than open top", input: "> 60", low: 60, ok: true, openTop: true},
		{name: "less-than open bottom", input: "< 150", low: 0, high: 150, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "placeholder dash", input: "-", ok: false},
		{name: "not applicable", input: "N/A", ok: false},
		{name: "free text", input: "see note", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, ok := parseRangeText(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.InDelta(t, tt.low, low, 1e-9)
			if tt.openTop {
				assert.True(t, math.IsInf(high, 1))
			} else {
				assert.InDelta(t, tt.high, high, 1e-9)
			}
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
