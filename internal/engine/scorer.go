package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/labsense/risk-engine/internal/domain"
)

// scoreState accumulates the per-test pass over a report. Findings
// lists preserve input order; the score itself is order-independent.
type scoreState struct {
	score         int
	flags         map[string]bool
	organs        []string
	organsSeen    map[string]bool
	critical      []domain.ClassifiedTest
	abnormal      []domain.ClassifiedTest
	normal        []domain.ClassifiedTest
	normalCount   int
	criticalCount int
	abnormalCount int
}

func newScoreState() *scoreState {
	return &scoreState{
		flags:      make(map[string]bool),
		organsSeen: make(map[string]bool),
	}
}

// classifyAll runs the classifier over every record. A panic raised by
// one record's classification is contained to that record and degrades
// it to UNKNOWN, so one malformed record cannot abort analysis of the
// remaining records.
func (e *Engine) classifyAll(records []domain.TestRecord, sex domain.Sex) []domain.ClassifiedTest {
	classified := make([]domain.ClassifiedTest, 0, len(records))
	for i := range records {
		classified = append(classified, e.classifyGuarded(&records[i], sex))
	}
	return classified
}

func (e *Engine) classifyGuarded(rec *domain.TestRecord, sex domain.Sex) (result domain.ClassifiedTest) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(logrus.Fields{
				"test_name": rec.TestName,
				"panic":     r,
			}).Warn("Recovered from panic while classifying test record")
			result = domain.ClassifiedTest{
				TestName:    rec.TestName,
				Unit:        rec.Unit,
				Status:      domain.StatusUnknown,
				Severity:    domain.SeverityUnknown,
				OrganSystem: domain.OrganGeneral,
				Message:     rec.TestName + " could not be evaluated due to an internal classification failure",
			}
		}
	}()
	return e.Classify(rec, sex)
}

// accumulate runs the per-test pass: critical severity adds 30, marks
// the test's organ as affected and raises a per-test critical flag;
// moderate severity adds 10 and raises a per-test abnormal flag;
// normal tests increment the normal counter. Organs are attributed
// only by critical findings and each organ is recorded once, in first
// appearance order.
func (s *scoreState) accumulate(classified []domain.ClassifiedTest) {
	for _, test := range classified {
		key := NormalizeTestName(test.TestName)

		switch {
		case test.Severity == domain.SeverityCritical:
			s.score += 30
			s.criticalCount++
			s.critical = append(s.critical, test)
			if key != "" {
				s.flags[key+"_critical"] = true
			}
			s.addOrgan(test.OrganSystem)
		case test.Severity == domain.SeverityModerate:
			s.score += 10
			s.abnormalCount++
			s.abnormal = append(s.abnormal, test)
			if key != "" {
				s.flags[key+"_abnormal"] = true
			}
		case test.Status == domain.StatusNormal:
			s.normalCount++
			s.normal = append(s.normal, test)
		}
	}
}

func (s *scoreState) addOrgan(organ string) {
	if organ == "" || s.organsSeen[organ] {
		return
	}
	s.organsSeen[organ] = true
	s.organs = append(s.organs, organ)
}

// numericValuesByKey indexes the raw cleaned numeric values by
// normalized test key for the combinatorial flag pass. Keys are NOT
// resolved through the alias table: the combinatorial thresholds are
// physician heuristics written against the names physicians use, some
// at a different scale than the canonical reference entries. The first
// occurrence of a key wins. Values excluded from scoring (unparseable,
// skipped albumin readings) are omitted.
func (e *Engine) numericValuesByKey(records []domain.TestRecord, classified []domain.ClassifiedTest) map[string]float64 {
	values := make(map[string]float64, len(records))
	for i := range records {
		if i < len(classified) && !classified[i].CountsForScoring() {
			continue
		}
		key := NormalizeTestName(records[i].TestName)
		if key == "" {
			continue
		}
		v := parseNumericValue(&records[i])
		if v == nil {
			continue
		}
		if _, exists := values[key]; !exists {
			values[key] = *v
		}
	}
	return values
}

// deriveRiskLevel maps the aggregate counts and score to the final
// categorical level. The critical branch is evaluated first and
// short-circuits: a report with zero critical findings but a score of
// 60 is still HIGH.
func deriveRiskLevel(criticalCount, abnormalCount, score int) domain.RiskLevel {
	switch {
	case criticalCount > 0 || score >= 50:
		return domain.RiskHigh
	case abnormalCount >= 3 || score >= 25:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}
