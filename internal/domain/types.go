// Package domain contains the core business entities and types for
// rule-based clinical risk assessment of laboratory reports.
//
// The engine classifies extracted lab values against clinical reference
// ranges and derives a deterministic aggregate risk level. It performs
// no statistical inference: every output is a pure function of the
// input records and the reference knowledge base.
package domain

import (
	"strings"
)

// Status represents the clinical status of a single test value relative
// to its resolved reference range.
type Status string

const (
	StatusNormal         Status = "NORMAL"
	StatusLow            Status = "LOW"
	StatusHigh           Status = "HIGH"
	StatusCriticallyLow  Status = "CRITICALLY_LOW"
	StatusCriticallyHigh Status = "CRITICALLY_HIGH"
	StatusUnknown        Status = "UNKNOWN"
	StatusSkipped        Status = "SKIPPED"
)

// Severity grades how far a test value deviates from its reference range.
type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityModerate Severity = "MODERATE"
	SeverityCritical Severity = "CRITICAL"
	SeverityUnknown  Severity = "UNKNOWN"
)

// RiskLevel is the aggregate categorical risk for a full report.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Sex is the patient sex used to select sex-differentiated reference
// ranges. Anything other than male or female is treated as unspecified;
// unspecified patients use the male sub-ranges, a documented policy of
// the range resolver rather than a guess.
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexUnspecified Sex = ""
)

// OrganGeneral is the organ system attributed to tests the knowledge
// base cannot map to a specific organ.
const OrganGeneral = "General"

// IsValid validates the status against the closed set of classification
// outcomes. Only valid statuses may enter clinical output.
func (s Status) IsValid() bool {
	switch s {
	case StatusNormal, StatusLow, StatusHigh, StatusCriticallyLow,
		StatusCriticallyHigh, StatusUnknown, StatusSkipped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsAbnormal reports whether the status represents a value outside its
// reference range. UNKNOWN and SKIPPED are not abnormal: they are
// degraded classifications, not clinical findings.
func (s Status) IsAbnormal() bool {
	switch s {
	case StatusLow, StatusHigh, StatusCriticallyLow, StatusCriticallyHigh:
		return true
	default:
		return false
	}
}

// IsValid validates the severity level.
func (sv Severity) IsValid() bool {
	switch sv {
	case SeverityNormal, SeverityModerate, SeverityCritical, SeverityUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (sv Severity) String() string {
	return string(sv)
}

// IsValid validates the aggregate risk level.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// LogFields returns structured logging fields for audit trails.
func (r RiskLevel) LogFields() map[string]any {
	return map[string]any{
		"risk_level":      string(r),
		"is_valid":        r.IsValid(),
		"requires_review": r.RequiresReview(),
	}
}

// RequiresReview reports whether the risk level warrants clinical
// follow-up. Conservative for unknown levels.
func (r RiskLevel) RequiresReview() bool {
	switch r {
	case RiskLow:
		return false
	case RiskModerate, RiskHigh:
		return true
	default:
		return true
	}
}

// ParseSex maps free-text sex/gender strings from extracted documents
// onto the Sex type. Unrecognized values yield SexUnspecified.
func ParseSex(raw string) Sex {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m":
		return SexMale
	case "female", "f":
		return SexFemale
	default:
		return SexUnspecified
	}
}
