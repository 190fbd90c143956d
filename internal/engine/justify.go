package engine

import "fmt"

// buildJustification produces the ordered human-readable reasons for
// an analysis. The critical-count and abnormal-count sentences always
// come first in that order, followed by one fixed sentence per active
// combinatorial flag in rule-table order. The all-normal sentence is
// emitted only when the list would otherwise be empty.
func buildJustification(criticalCount, abnormalCount int, flags map[string]bool) []string {
	var reasons []string

	if criticalCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d test(s) at critical levels requiring immediate attention", criticalCount))
	}
	if abnormalCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d test(s) outside the normal reference range", abnormalCount))
	}

	for _, rule := range clinicalFlagRules {
		if flags[rule.name] {
			reasons = append(reasons, rule.justification)
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "All evaluated values are within normal range")
	}

	return reasons
}
