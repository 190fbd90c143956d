package engine

// valueSet is the raw numeric values of a report indexed by normalized
// test key, as built by numericValuesByKey.
type valueSet map[string]float64

func (v valueSet) above(threshold float64, keys ...string) bool {
	for _, key := range keys {
		if val, ok := v[key]; ok && val > threshold {
			return true
		}
	}
	return false
}

func (v valueSet) below(threshold float64, keys ...string) bool {
	for _, key := range keys {
		if val, ok := v[key]; ok && val < threshold {
			return true
		}
	}
	return false
}

func (v valueSet) between(low, high float64, key string) bool {
	val, ok := v[key]
	return ok && val >= low && val < high
}

// clinicalFlagRule is one combinatorial physician heuristic: a named
// flag raised by a multi-indicator threshold check, with a fixed score
// increment added on top of the per-test pass.
type clinicalFlagRule struct {
	name          string
	score         int
	triggered     func(valueSet) bool
	justification string
}

// clinicalFlagRules is evaluated in order; the order also fixes the
// justification sequence. The thresholds here are deliberately
// distinct from the per-test reference ranges: they encode clinical
// decision points, not lab-reference breaches.
var clinicalFlagRules = []clinicalFlagRule{
	{
		name:  "kidney_dysfunction",
		score: 15,
		triggered: func(v valueSet) bool {
			return v.above(2.0, "creatinine") || v.above(40, "bun") || v.below(30, "egfr")
		},
		justification: "Kidney function markers indicate possible renal impairment",
	},
	{
		name:  "liver_dysfunction",
		score: 15,
		triggered: func(v valueSet) bool {
			return v.above(200, "alt", "sgpt") || v.above(200, "ast", "sgot") || v.above(3.0, "bilirubin_total")
		},
		justification: "Liver enzyme levels indicate possible hepatic injury",
	},
	{
		name:  "cardiac_injury",
		score: 25,
		triggered: func(v valueSet) bool {
			return v.above(0.04, "troponin", "troponin_i") || v.above(0.01, "troponin_t")
		},
		justification: "Elevated cardiac markers indicate possible myocardial injury",
	},
	{
		name:  "severe_anemia",
		score: 20,
		triggered: func(v valueSet) bool {
			return v.below(8.0, "hemoglobin")
		},
		justification: "Severely low hemoglobin indicates severe anemia",
	},
	{
		name:  "moderate_anemia",
		score: 10,
		triggered: func(v valueSet) bool {
			return v.between(8.0, 10.0, "hemoglobin")
		},
		justification: "Low hemoglobin indicates moderate anemia",
	},
	{
		name:  "diabetes_indicated",
		score: 10,
		triggered: func(v valueSet) bool {
			return v.above(126, "glucose_fasting", "glucose") || v.above(6.5, "hba1c")
		},
		justification: "Glucose control markers indicate possible diabetes",
	},
	{
		name:  "infection_inflammation",
		score: 10,
		triggered: func(v valueSet) bool {
			return v.above(15, "wbc") || v.above(10, "crp") || v.above(0.5, "procalcitonin")
		},
		justification: "Inflammatory markers indicate possible infection or inflammation",
	},
	{
		name:  "electrolyte_imbalance",
		score: 15,
		triggered: func(v valueSet) bool {
			return v.below(3.0, "potassium") || v.above(5.5, "potassium") ||
				v.below(130, "sodium") || v.above(150, "sodium")
		},
		justification: "Electrolyte levels are outside safe bounds",
	},
}

// applyClinicalFlags runs the combinatorial pass over the raw values
// and folds any triggered rules into the score state.
func (s *scoreState) applyClinicalFlags(values valueSet) {
	for _, rule := range clinicalFlagRules {
		if rule.triggered(values) {
			s.flags[rule.name] = true
			s.score += rule.score
		}
	}
}
