// Package engine implements the deterministic clinical risk assessment
// core: per-test classification against reference ranges, combinatorial
// clinical flags, and aggregate risk scoring with a human-readable
// justification.
//
// The engine is a pure, synchronous computation with no I/O and no
// shared mutable state across invocations. Callers may run any number
// of analyses concurrently.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/labsense/risk-engine/internal/domain"
	"github.com/labsense/risk-engine/internal/knowledge"
)

// Engine analyzes extracted lab reports. Construct once with New and
// share freely; all state is read-only after construction.
type Engine struct {
	kb     *knowledge.Base
	logger *logrus.Logger
}

// New creates a risk engine over the given knowledge base.
func New(kb *knowledge.Base, logger *logrus.Logger) *Engine {
	return &Engine{
		kb:     kb,
		logger: logger,
	}
}

// Analyze runs the full assessment over one report: classify each test,
// accumulate the per-test score pass, apply the combinatorial clinical
// flags, derive the risk level and assemble the justification. The
// result is complete and well-formed for any input, however poorly
// extracted; malformed records degrade to UNKNOWN rather than failing
// the analysis.
func (e *Engine) Analyze(records []domain.TestRecord, patient domain.PatientContext) *domain.RiskAnalysis {
	analysis := &domain.RiskAnalysis{
		ID:           uuid.New().String(),
		CalculatedAt: time.Now().UTC(),
	}

	if len(records) == 0 {
		analysis.RiskLevel = domain.RiskLow
		analysis.Flags = map[string]bool{}
		analysis.Justification = []string{"No test results were available for analysis"}
		analysis.Message = "No test results found in the report"
		analysis.ComputedRisk = computedRisk(analysis)
		return analysis
	}

	classified := e.classifyAll(records, patient.Sex)

	state := newScoreState()
	state.accumulate(classified)
	state.applyClinicalFlags(e.numericValuesByKey(records, classified))

	analysis.RiskScore = state.score
	analysis.Flags = state.flags
	analysis.AffectedOrgans = state.organs
	analysis.CriticalFindings = state.critical
	analysis.AbnormalFindings = state.abnormal
	analysis.NormalFindings = state.normal
	analysis.TotalTests = len(classified)
	analysis.CriticalCount = state.criticalCount
	analysis.AbnormalCount = state.abnormalCount
	analysis.NormalCount = state.normalCount
	analysis.RiskLevel = deriveRiskLevel(state.criticalCount, state.abnormalCount, state.score)
	analysis.Justification = buildJustification(state.criticalCount, state.abnormalCount, state.flags)
	analysis.ComputedRisk = computedRisk(analysis)

	if err := analysis.Validate(); err != nil {
		// Validation failure is a programming defect, not an input
		// problem; log it loudly but still return the analysis.
		e.logger.WithFields(logrus.Fields{
			"analysis_id": analysis.ID,
			"error":       err,
		}).Error("Risk analysis failed invariant validation")
	}

	e.logger.WithFields(analysis.RiskLevel.LogFields()).WithFields(logrus.Fields{
		"analysis_id":    analysis.ID,
		"total_tests":    analysis.TotalTests,
		"critical_count": analysis.CriticalCount,
		"abnormal_count": analysis.AbnormalCount,
		"risk_score":     analysis.RiskScore,
	}).Info("Completed risk analysis")

	return analysis
}

// computedRisk flattens the aggregate counts into the block consumed
// by the summarization service and the UI.
func computedRisk(a *domain.RiskAnalysis) domain.ComputedRisk {
	return domain.ComputedRisk{
		RiskLevel:     a.RiskLevel,
		RiskScore:     a.RiskScore,
		TotalTests:    a.TotalTests,
		CriticalCount: a.CriticalCount,
		AbnormalCount: a.AbnormalCount,
		NormalCount:   a.NormalCount,
	}
}
