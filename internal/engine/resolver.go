package engine

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/labsense/risk-engine/internal/domain"
	"github.com/labsense/risk-engine/internal/knowledge"
)

// rangeSource identifies which priority tier produced a resolved range.
type rangeSource int

const (
	// rangeSourceNone means no numeric range could be resolved; the
	// classifier falls back to the upstream extractor's status.
	rangeSourceNone rangeSource = iota

	// rangeSourceDocument is a range extracted from the source
	// document. The issuing lab's own standard is authoritative and
	// always wins over the knowledge base.
	rangeSourceDocument

	// rangeSourceKnowledgeBase is a range from the built-in tables.
	rangeSourceKnowledgeBase
)

// resolveRange decides which reference range applies to a test record.
//
// Priority order, highest first:
//
//  1. A parseable range printed on the source document. No critical
//     thresholds are attached: the document did not supply them, so
//     the engine does not invent them.
//  2. The knowledge base, keyed by normalized test name, with the male
//     sub-range as the default for unspecified sex. Skipped entirely
//     when the record's unit is in lakhs but the table bounds are
//     absolute counts, since comparing across that 100,000x scale gap
//     would misclassify every value.
//  3. Nothing. The caller falls back to the upstream status.
//
// The returned range is built fresh per call; document ranges must not
// leak across tests.
func (e *Engine) resolveRange(rec *domain.TestRecord, sex domain.Sex) (*domain.ReferenceRange, rangeSource) {
	if low, high, ok := parseRangeText(rec.ReferenceRange); ok {
		return &domain.ReferenceRange{
			Low:  low,
			High: high,
			Unit: rec.Unit,
			Text: strings.TrimSpace(rec.ReferenceRange),
		}, rangeSourceDocument
	}

	key := NormalizeTestName(rec.TestName)
	if key == "" {
		return nil, rangeSourceNone
	}

	if entry, ok := e.kb.Entry(key); ok {
		if knowledge.IsLakhUnit(rec.Unit) && entry.Low > 100 {
			// Unit-scale mismatch: the table is in absolute counts,
			// the record is in lakhs. Fall through to the status
			// fallback rather than silently misclassifying.
			e.logger.WithFields(logrus.Fields{
				"test_name": rec.TestName,
				"unit":      rec.Unit,
			}).Debug("Skipping knowledge-base range due to unit-scale mismatch")
			return nil, rangeSourceNone
		}

		if r, ok := e.kb.Range(key, sex); ok {
			return r, rangeSourceKnowledgeBase
		}
	}

	return nil, rangeSourceNone
}
