package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/labsense/risk-engine/internal/domain"
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	rangePair   = regexp.MustCompile(`([\d.]+)\s*[-–—]\s*([\d.]+)`)
	firstNumber = regexp.MustCompile(`[\d.]+`)
)

// NormalizeTestName canonicalizes a free-text test name into a lookup
// key: lower-cased, every non-alphanumeric run collapsed to a single
// underscore, leading and trailing underscores trimmed. Empty input
// yields an empty key, never an error.
func NormalizeTestName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = nonAlnumRun.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// CleanNumericString strips comma thousands-separators from a raw
// value string. Decimal points and scientific notation pass through
// untouched; empty input is the identity.
func CleanNumericString(raw string) string {
	if raw == "" {
		return raw
	}
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
}

// parseNumericValue extracts the numeric value from a test record. A
// pre-parsed numeric_value from the extractor takes precedence; the
// textual value is cleaned and parsed otherwise. Returns nil when no
// numeric value can be obtained.
func parseNumericValue(rec *domain.TestRecord) *float64 {
	if rec.NumericValue != nil {
		v := *rec.NumericValue
		return &v
	}

	cleaned := CleanNumericString(rec.Value)
	if cleaned == "" {
		return nil
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseRangeText parses a reference range as printed on a lab report.
// Accepts "<low> - <high>" with hyphen, en-dash or em-dash separators
// and comma thousands in either number, plus the open-ended "> x" and
// "< x" forms some labs print.
func parseRangeText(raw string) (low, high float64, ok bool) {
	text := CleanNumericString(raw)
	if text == "" || text == "-" || strings.EqualFold(text, "N/A") {
		return 0, 0, false
	}

	if strings.HasPrefix(text, ">") {
		if m := firstNumber.FindString(text); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return v, math.Inf(1), true
			}
		}
		return 0, 0, false
	}

	if strings.HasPrefix(text, "<") {
		if m := firstNumber.FindString(text); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return 0, v, true
			}
		}
		return 0, 0, false
	}

	m := rangePair.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	lo, errLo := strconv.ParseFloat(m[1], 64)
	hi, errHi := strconv.ParseFloat(m[2], 64)
	if errLo != nil || errHi != nil {
		return 0, 0, false
	}

	return lo, hi, true
}
