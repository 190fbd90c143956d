package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TestRecord is a single extracted laboratory test as delivered by the
// upstream extraction service. All fields except the name are optional
// and may be malformed; malformed records degrade to UNKNOWN rather
// than failing analysis.
type TestRecord struct {
	// TestName is the free-text test name as printed on the document.
	TestName string `json:"test_name"`

	// Value is the raw extracted value, possibly with thousands
	// separators or stray text.
	Value string `json:"value,omitempty"`

	// NumericValue is the pre-parsed numeric value, when the extractor
	// supplied one. Takes precedence over Value during parsing.
	NumericValue *float64 `json:"numeric_value,omitempty"`

	// Unit is the unit string as printed (e.g. "mg/dL", "lakhs/cumm").
	Unit string `json:"unit,omitempty"`

	// ReferenceRange is the reference range as printed on the source
	// document. When parseable it is authoritative over the built-in
	// knowledge base.
	ReferenceRange string `json:"reference_range,omitempty"`

	// Status is the upstream extractor's own clinical judgment
	// (NORMAL/HIGH/LOW). Used only as a last-resort fallback when no
	// numeric range can be resolved.
	Status string `json:"status,omitempty"`
}

// UnmarshalJSON accepts the loose input contract of the extraction
// service: value may be a JSON string or number, and numeric_value may
// carry the parsed number separately. Absent or malformed fields never
// raise; they leave the record in a degraded but decodable state.
func (t *TestRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		TestName       string          `json:"test_name"`
		Value          json.RawMessage `json:"value"`
		NumericValue   *float64        `json:"numeric_value"`
		Unit           string          `json:"unit"`
		ReferenceRange string          `json:"reference_range"`
		Status         string          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding test record: %w", err)
	}

	t.TestName = raw.TestName
	t.NumericValue = raw.NumericValue
	t.Unit = raw.Unit
	t.ReferenceRange = raw.ReferenceRange
	t.Status = strings.ToUpper(strings.TrimSpace(raw.Status))
	t.Value = decodeFlexibleValue(raw.Value)

	return nil
}

// decodeFlexibleValue renders a JSON string or number as its textual
// form. Anything else (null, objects) degrades to the empty string.
func decodeFlexibleValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return ""
}

// PatientContext carries the patient demographics relevant to range
// selection. Only sex participates in range resolution; the remaining
// fields are carried through for downstream consumers.
type PatientContext struct {
	Sex  Sex    `json:"sex,omitempty"`
	Age  string `json:"age,omitempty"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts sex under either the "sex" or "gender" key and
// normalizes unrecognized values to unspecified.
func (p *PatientContext) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sex    string          `json:"sex"`
		Gender string          `json:"gender"`
		Age    json.RawMessage `json:"age"`
		Name   string          `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding patient context: %w", err)
	}

	sex := raw.Sex
	if sex == "" {
		sex = raw.Gender
	}
	p.Sex = ParseSex(sex)
	p.Age = decodeFlexibleValue(raw.Age)
	p.Name = raw.Name

	return nil
}

// ReferenceRange is a resolved numeric range applied to one test value.
// Produced fresh per test and never cached: document-supplied ranges
// must not leak across tests.
type ReferenceRange struct {
	Low          float64  `json:"low"`
	High         float64  `json:"high"`
	Unit         string   `json:"unit,omitempty"`
	CriticalLow  *float64 `json:"critical_low,omitempty"`
	CriticalHigh *float64 `json:"critical_high,omitempty"`

	// Text is the human-readable form of the range as applied, used in
	// classification messages and serialized output.
	Text string `json:"text,omitempty"`
}

// ClassifiedTest is the immutable classification outcome for one test.
// Created once per test per invocation, never merged or updated.
type ClassifiedTest struct {
	TestName       string   `json:"test_name"`
	Value          *float64 `json:"value"`
	Unit           string   `json:"unit,omitempty"`
	ReferenceRange string   `json:"reference_range,omitempty"`
	Status         Status   `json:"status"`
	Severity       Severity `json:"severity"`
	OrganSystem    string   `json:"organ_system"`
	Message        string   `json:"message"`
}

// CountsForScoring reports whether the test participates in risk score
// accumulation. UNKNOWN and SKIPPED tests are counted in totals but
// excluded from scoring.
func (c *ClassifiedTest) CountsForScoring() bool {
	return c.Status != StatusUnknown && c.Status != StatusSkipped
}

// ComputedRisk is the flattened risk block consumed by the
// summarization service and the UI. It is the sole numeric truth the
// downstream LLM explainer is permitted to narrate.
type ComputedRisk struct {
	RiskLevel     RiskLevel `json:"risk_level"`
	RiskScore     int       `json:"risk_score"`
	TotalTests    int       `json:"total_tests"`
	CriticalCount int       `json:"critical_count"`
	AbnormalCount int       `json:"abnormal_count"`
	NormalCount   int       `json:"normal_count"`
}

// RiskAnalysis is the aggregate output for one report.
//
// Invariants: CriticalCount == len(CriticalFindings), AbnormalCount ==
// len(AbnormalFindings), and RiskLevel is a pure function of
// CriticalCount and RiskScore. AffectedOrgans lists each organ at most
// once. Findings lists preserve input order.
type RiskAnalysis struct {
	ID string `json:"analysis_id"`

	RiskLevel RiskLevel `json:"risk_level"`
	RiskScore int       `json:"risk_score"`

	Flags          map[string]bool `json:"flags"`
	AffectedOrgans []string        `json:"affected_organs"`

	CriticalFindings []ClassifiedTest `json:"critical_findings"`
	AbnormalFindings []ClassifiedTest `json:"abnormal_findings"`
	NormalFindings   []ClassifiedTest `json:"normal_findings"`

	TotalTests    int `json:"total_tests"`
	CriticalCount int `json:"critical_count"`
	AbnormalCount int `json:"abnormal_count"`
	NormalCount   int `json:"normal_count"`

	Justification []string `json:"justification"`

	// Message explains degraded analyses, e.g. an empty report.
	Message string `json:"message,omitempty"`

	ComputedRisk ComputedRisk `json:"computed_risk"`

	CalculatedAt time.Time `json:"calculated_at"`
}

// Validate checks the aggregate invariants before the analysis leaves
// the engine boundary.
func (r *RiskAnalysis) Validate() error {
	if !r.RiskLevel.IsValid() {
		return fmt.Errorf("risk analysis validation: %w", ErrInvalidRiskLevel)
	}
	if r.RiskScore < 0 {
		return fmt.Errorf("risk analysis validation: negative risk score %d", r.RiskScore)
	}
	if r.CriticalCount != len(r.CriticalFindings) {
		return fmt.Errorf("risk analysis validation: critical count %d does not match findings %d",
			r.CriticalCount, len(r.CriticalFindings))
	}
	if r.AbnormalCount != len(r.AbnormalFindings) {
		return fmt.Errorf("risk analysis validation: abnormal count %d does not match findings %d",
			r.AbnormalCount, len(r.AbnormalFindings))
	}
	seen := make(map[string]bool, len(r.AffectedOrgans))
	for _, organ := range r.AffectedOrgans {
		if seen[organ] {
			return fmt.Errorf("risk analysis validation: duplicate affected organ %q", organ)
		}
		seen[organ] = true
	}
	return nil
}
