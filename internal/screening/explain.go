package screening

import (
	"fmt"
	"strings"
)

// explain builds the ordered, human-readable reason list for one surfaced
// match: strategy hits first, then context agreements and disagreements,
// then the adjudication outcome. Pure over its inputs, so repeated runs on
// the same snapshot produce identical explanations.
func (s *Service) explain(c *candidate, finalScore float64) []string {
	reasons := make([]string, 0, 8)

	for _, strat := range strategyOrder {
		sc, ok := c.scores[strat]
		if !ok {
			continue
		}
		reasons = append(reasons, strategyReason(sc))
	}

	switch c.context.DOB {
	case DOBExact:
		reasons = append(reasons, "date of birth matches exactly")
	case DOBClose:
		reasons = append(reasons, "birth year matches (partial date)")
	case DOBMismatch:
		reasons = append(reasons, "date of birth conflicts with the record")
	}
	switch c.context.Nationality {
	case FieldMatched:
		reasons = append(reasons, "nationality matches the record")
	case FieldMismatch:
		reasons = append(reasons, "nationality conflicts with the record")
	}
	switch c.context.Address {
	case FieldMatched:
		reasons = append(reasons, "address matches the record")
	case FieldMismatch:
		reasons = append(reasons, "address conflicts with the record")
	}

	switch {
	case s.adjudicator == nil:
		reasons = append(reasons, "LLM evaluation not configured; scored on deterministic signals")
	case c.judgment != nil:
		rationale := strings.TrimSpace(c.judgment.Rationale)
		if rationale == "" {
			rationale = fmt.Sprintf("assessed %s risk with confidence %.2f",
				strings.ToLower(string(c.judgment.RiskLevel)), c.judgment.Confidence)
		}
		reasons = append(reasons, "LLM assessment: "+rationale)
	case c.degraded:
		reasons = append(reasons, "LLM evaluation unavailable; score reflects deterministic signals only")
	case !c.adjudicated:
		reasons = append(reasons, "below LLM review threshold; scored on deterministic signals")
	}

	if len(reasons) == 0 {
		// Unreachable for a surfaced match, but a result must never ship
		// without at least one reason.
		reasons = append(reasons, fmt.Sprintf("matched with score %.2f", finalScore))
	}
	return reasons
}

func strategyReason(sc StrategyScore) string {
	field := "name"
	switch sc.MatchedField {
	case fieldPrimaryName:
		field = "primary name"
	case fieldAlias:
		field = fmt.Sprintf("alias %q", sc.MatchedName)
	}
	switch sc.Strategy {
	case StrategyExact:
		return fmt.Sprintf("exact match on %s via %s variant %q", field, sc.MatchedVariant.Rule, sc.MatchedVariant.Text)
	case StrategyAlias:
		return fmt.Sprintf("known alias match via %s variant %q", sc.MatchedVariant.Rule, sc.MatchedVariant.Text)
	case StrategyFuzzy:
		return fmt.Sprintf("fuzzy match on %s at similarity %.2f via %s variant %q",
			field, sc.Value, sc.MatchedVariant.Rule, sc.MatchedVariant.Text)
	case StrategyPhonetic:
		return fmt.Sprintf("phonetic match on %s via %s variant %q", field, sc.MatchedVariant.Rule, sc.MatchedVariant.Text)
	default:
		return fmt.Sprintf("%s match on %s", strings.ToLower(string(sc.Strategy)), field)
	}
}
