// Package knowledge holds the built-in clinical reference knowledge
// base: canonical test identities mapped to reference ranges, critical
// thresholds and organ systems.
//
// The base is immutable after construction and safe for unlimited
// concurrent readers. It is built once at process start and injected
// into the engine; there is no write path.
package knowledge

import (
	"strconv"
	"strings"

	"github.com/labsense/risk-engine/internal/domain"
)

// SexRange is a sex-specific override of the normal bounds. Critical
// thresholds are not sex-differentiated.
type SexRange struct {
	Low  float64
	High float64
}

// Entry is the reference data for one canonical test identity.
type Entry struct {
	Low          float64
	High         float64
	Unit         string
	CriticalLow  *float64
	CriticalHigh *float64
	Male         *SexRange
	Female       *SexRange
}

// Base is the read-only reference knowledge base.
type Base struct {
	entries map[string]Entry
	aliases map[string]string
	organs  map[string]string
}

// New constructs the knowledge base from the built-in tables.
func New() *Base {
	return &Base{
		entries: referenceRanges,
		aliases: testAliases,
		organs:  organSystems,
	}
}

// Canonical resolves a normalized test key through the alias table to
// its canonical identity. Unknown keys pass through unchanged.
func (b *Base) Canonical(key string) string {
	if canonical, ok := b.aliases[key]; ok {
		return canonical
	}
	return key
}

// Entry returns the raw reference entry for a normalized test key.
func (b *Base) Entry(key string) (Entry, bool) {
	e, ok := b.entries[b.Canonical(key)]
	return e, ok
}

// Range resolves the reference range for a normalized test key and
// patient sex. Unspecified sex selects the male sub-range when the
// entry is sex-differentiated; this is a deliberate, documented default
// rather than a silent failure.
func (b *Base) Range(key string, sex domain.Sex) (*domain.ReferenceRange, bool) {
	entry, ok := b.Entry(key)
	if !ok {
		return nil, false
	}

	low, high := entry.Low, entry.High
	switch sex {
	case domain.SexFemale:
		if entry.Female != nil {
			low, high = entry.Female.Low, entry.Female.High
		}
	default:
		// Male and unspecified both use the male sub-range.
		if entry.Male != nil {
			low, high = entry.Male.Low, entry.Male.High
		}
	}

	return &domain.ReferenceRange{
		Low:          low,
		High:         high,
		Unit:         entry.Unit,
		CriticalLow:  entry.CriticalLow,
		CriticalHigh: entry.CriticalHigh,
		Text:         formatRangeText(low, high, entry.Unit),
	}, true
}

// OrganSystem returns the organ system attributed to a normalized test
// key, defaulting to General for unknown tests.
func (b *Base) OrganSystem(key string) string {
	if organ, ok := b.organs[b.Canonical(key)]; ok {
		return organ
	}
	return domain.OrganGeneral
}

// TestCount returns the number of canonical test identities.
func (b *Base) TestCount() int {
	return len(b.entries)
}

// formatRangeText renders a range as printed in classification
// messages, e.g. "12 - 17 g/dL".
func formatRangeText(low, high float64, unit string) string {
	text := formatBound(low) + " - " + formatBound(high)
	if unit != "" {
		text += " " + unit
	}
	return text
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// critical is a constructor shorthand for optional critical thresholds
// in the reference tables.
func critical(v float64) *float64 {
	return &v
}

// IsLakhUnit reports whether a unit string uses the Indian lakh scale
// (1 lakh = 100,000). Values so scaled must never be compared against
// absolute-count reference ranges.
func IsLakhUnit(unit string) bool {
	u := strings.ToLower(unit)
	return strings.Contains(u, "lakh") || strings.Contains(u, "lac")
}
