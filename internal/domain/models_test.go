package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestRecordUnmarshalFlexibleValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string value", `{"test_name":"Hemoglobin","value":"13.5"}`, "13.5"},
		{"numeric value", `{"test_name":"Hemoglobin","value":13.5}`, "13.5"},
		{"integer value", `{"test_name":"WBC","value":9800}`, "9800"},
		{"null value", `{"test_name":"Hemoglobin","value":null}`, ""},
		{"absent value", `{"test_name":"Hemoglobin"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec TestRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.expected, rec.Value)
		})
	}
}

func TestTestRecordUnmarshalNormalizesStatus(t *testing.T) {
	var rec TestRecord
	require.NoError(t, json.Unmarshal([]byte(`{"test_name":"Hb","status":" high "}`), &rec))
	assert.Equal(t, "HIGH", rec.Status)
}

func TestPatientContextUnmarshalGenderKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Sex
	}{
		{"sex key", `{"sex":"male"}`, SexMale},
		{"gender key", `{"gender":"Female"}`, SexFemale},
		{"sex wins over gender", `{"sex":"male","gender":"female"}`, SexMale},
		{"unrecognized", `{"sex":"unknown"}`, SexUnspecified},
		{"absent", `{}`, SexUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PatientContext
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.expected, p.Sex)
		})
	}
}

func TestPatientContextUnmarshalNumericAge(t *testing.T) {
	var p PatientContext
	require.NoError(t, json.Unmarshal([]byte(`{"age":42,"name":"Test"}`), &p))
	assert.Equal(t, "42", p.Age)
	assert.Equal(t, "Test", p.Name)
}

func TestRiskAnalysisValidate(t *testing.T) {
	valid := func() *RiskAnalysis {
		return &RiskAnalysis{
			RiskLevel:        RiskHigh,
			RiskScore:        45,
			CriticalCount:    1,
			CriticalFindings: []ClassifiedTest{{TestName: "Potassium"}},
			AffectedOrgans:   []string{"Electrolytes"},
		}
	}

	t.Run("valid analysis", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("invalid risk level", func(t *testing.T) {
		a := valid()
		a.RiskLevel = RiskLevel("EXTREME")
		assert.ErrorIs(t, a.Validate(), ErrInvalidRiskLevel)
	})

	t.Run("negative score", func(t *testing.T) {
		a := valid()
		a.RiskScore = -1
		assert.Error(t, a.Validate())
	})

	t.Run("critical count mismatch", func(t *testing.T) {
		a := valid()
		a.CriticalCount = 2
		assert.Error(t, a.Validate())
	})

	t.Run("duplicate organ", func(t *testing.T) {
		a := valid()
		a.AffectedOrgans = []string{"Blood", "Blood"}
		assert.Error(t, a.Validate())
	})
}

func TestClassifiedTestCountsForScoring(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusNormal, true},
		{StatusLow, true},
		{StatusCriticallyHigh, true},
		{StatusUnknown, false},
		{StatusSkipped, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			c := ClassifiedTest{Status: tt.status}
			assert.Equal(t, tt.expected, c.CountsForScoring())
		})
	}
}
