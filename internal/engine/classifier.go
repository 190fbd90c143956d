package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labsense/risk-engine/internal/domain"
)

// formatValue renders a numeric value without trailing zeros, matching
// how lab reports print them.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Classify evaluates a single test record against the resolved
// reference range and returns an immutable classification tuple.
//
// Classification is a pure function of the record and patient sex.
// Malformed input never returns an error; it degrades the status to
// UNKNOWN so one bad record cannot block analysis of the rest of the
// report.
func (e *Engine) Classify(rec *domain.TestRecord, sex domain.Sex) domain.ClassifiedTest {
	key := NormalizeTestName(rec.TestName)
	value := parseNumericValue(rec)

	result := domain.ClassifiedTest{
		TestName:    rec.TestName,
		Value:       value,
		Unit:        rec.Unit,
		OrganSystem: e.kb.OrganSystem(key),
	}

	if value == nil {
		result.Status = domain.StatusUnknown
		result.Severity = domain.SeverityUnknown
		result.Message = fmt.Sprintf("%s could not be evaluated: value %q is not numeric", rec.TestName, rec.Value)
		return result
	}

	// An albumin reading of exactly zero is a known extraction
	// artifact (confusion with the albumin/globulin ratio field), not
	// a survivable lab value.
	if e.kb.Canonical(key) == "albumin" && *value == 0 {
		result.Status = domain.StatusSkipped
		result.Severity = domain.SeverityUnknown
		result.OrganSystem = domain.OrganGeneral
		result.Message = fmt.Sprintf("%s reading of 0 skipped as a suspected extraction artifact", rec.TestName)
		return result
	}

	rr, source := e.resolveRange(rec, sex)
	if source == rangeSourceNone {
		return e.classifyFromUpstreamStatus(rec, result)
	}

	result.ReferenceRange = rr.Text
	result.Status, result.Severity = statusAgainstRange(*value, rr)
	result.Message = rangeMessage(rec.TestName, *value, rec.Unit, rr, result.Status)
	return result
}

// statusAgainstRange compares a numeric value against a resolved
// range. Critical thresholds are checked before the normal bounds so a
// critically low value is never reported as merely LOW.
func statusAgainstRange(value float64, rr *domain.ReferenceRange) (domain.Status, domain.Severity) {
	if rr.CriticalLow != nil && value < *rr.CriticalLow {
		return domain.StatusCriticallyLow, domain.SeverityCritical
	}
	if rr.CriticalHigh != nil && value > *rr.CriticalHigh {
		return domain.StatusCriticallyHigh, domain.SeverityCritical
	}
	if value < rr.Low {
		return domain.StatusLow, domain.SeverityModerate
	}
	if value > rr.High {
		return domain.StatusHigh, domain.SeverityModerate
	}
	return domain.StatusNormal, domain.SeverityNormal
}

// classifyFromUpstreamStatus is the last-resort tier: no usable range
// exists, so the status assigned by the extraction service is trusted
// and a severity is synthesized from it.
func (e *Engine) classifyFromUpstreamStatus(rec *domain.TestRecord, result domain.ClassifiedTest) domain.ClassifiedTest {
	switch domain.Status(strings.ToUpper(strings.TrimSpace(rec.Status))) {
	case domain.StatusHigh:
		result.Status = domain.StatusHigh
		result.Severity = domain.SeverityModerate
		result.Message = fmt.Sprintf("%s reported high by the source document", rec.TestName)
	case domain.StatusLow:
		result.Status = domain.StatusLow
		result.Severity = domain.SeverityModerate
		result.Message = fmt.Sprintf("%s reported low by the source document", rec.TestName)
	case domain.StatusNormal:
		result.Status = domain.StatusNormal
		result.Severity = domain.SeverityNormal
		result.Message = fmt.Sprintf("%s reported normal by the source document", rec.TestName)
	default:
		result.Status = domain.StatusUnknown
		result.Severity = domain.SeverityUnknown
		result.Message = fmt.Sprintf("%s has no usable reference range or source status", rec.TestName)
	}
	return result
}

// rangeMessage renders the templated explanation for a range-based
// classification. The text is fully reproducible from status, value
// and range, never free-form.
func rangeMessage(name string, value float64, unit string, rr *domain.ReferenceRange, status domain.Status) string {
	v := formatValue(value)
	if unit != "" {
		v += " " + unit
	}

	switch status {
	case domain.StatusCriticallyLow:
		return fmt.Sprintf("%s is critically low at %s (reference range %s)", name, v, rr.Text)
	case domain.StatusCriticallyHigh:
		return fmt.Sprintf("%s is critically high at %s (reference range %s)", name, v, rr.Text)
	case domain.StatusLow:
		return fmt.Sprintf("%s is below the reference range at %s (reference range %s)", name, v, rr.Text)
	case domain.StatusHigh:
		return fmt.Sprintf("%s is above the reference range at %s (reference range %s)", name, v, rr.Text)
	default:
		return fmt.Sprintf("%s is within the reference range at %s (reference range %s)", name, v, rr.Text)
	}
}
