package screening

import (
	"strings"

	"vigil/internal/names"
	"vigil/internal/watchlist"
)

// attributeMatchFloor is the similarity ratio at which two normalized
// nationality or address strings are treated as the same value.
const attributeMatchFloor = 0.85

// exactMismatchPenalty and exactMismatchFloor soften the DOB penalty when
// the name itself is a literal hit. A literal name match with a conflicting
// DOB is still worth a reviewer's attention.
const (
	exactMismatchPenalty = 0.15
	exactMismatchFloor   = 0.35
)

// scoreContext compares the query's structured attributes against each
// candidate and fuses strategy and context signals into a pre-adjudication
// score in [0,1].
func (s *Service) scoreContext(q Query, cands []*candidate) {
	for _, c := range cands {
		c.context = ContextAdjustment{
			DOB:         CompareDOB(q.DateOfBirth, c.record.DateOfBirth),
			Nationality: compareAttribute(q.Nationality, c.record.Nationalities),
			Address:     compareAttribute(q.Address, c.record.Addresses),
		}
		c.preScore = s.fuse(c)
	}
}

// CompareDOB classifies two possibly-partial dates. MISMATCH requires both
// sides known and disjoint; a missing side is always UNKNOWN.
func CompareDOB(query, record watchlist.Date) DOBMatch {
	if query.IsZero() || record.IsZero() {
		return DOBUnknown
	}
	if query.Year != record.Year {
		return DOBMismatch
	}
	if query.Complete() && record.Complete() {
		if query.Month == record.Month && query.Day == record.Day {
			return DOBExact
		}
		return DOBMismatch
	}
	// Year agrees but at least one side is year-only.
	return DOBClose
}

// compareAttribute matches one query attribute against a record's value set
// using normalized equality, containment, or high similarity.
func compareAttribute(query string, values []string) FieldMatch {
	qn := names.Normalize(query)
	if qn == "" || len(values) == 0 {
		return FieldUnknown
	}
	for _, v := range values {
		vn := names.Normalize(v)
		if vn == "" {
			continue
		}
		if qn == vn || strings.Contains(vn, qn) || strings.Contains(qn, vn) {
			return FieldMatched
		}
		if names.Ratio(qn, vn) >= attributeMatchFloor {
			return FieldMatched
		}
	}
	return FieldMismatch
}

// fuse combines the best strategy score with context adjustments. DOB
// agreement boosts, disagreement penalizes; nationality and address nudge.
// A DOB mismatch on a purely inferred (fuzzy or phonetic) hit takes the
// full penalty; a literal hit takes a reduced penalty and keeps a floor.
func (s *Service) fuse(c *candidate) float64 {
	best, ok := c.bestStrategy()
	if !ok {
		return 0
	}
	score := best.Value

	switch c.context.DOB {
	case DOBExact:
		score += 0.10
	case DOBClose:
		score += 0.05
	case DOBMismatch:
		if c.textualHit() {
			score -= exactMismatchPenalty
			if score < exactMismatchFloor {
				score = exactMismatchFloor
			}
		} else {
			score -= s.cfg.DOBMismatchPenalty
		}
	}

	switch c.context.Nationality {
	case FieldMatched:
		score += 0.05
	case FieldMismatch:
		score -= 0.05
	}
	switch c.context.Address {
	case FieldMatched:
		score += 0.05
	case FieldMismatch:
		score -= 0.05
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
