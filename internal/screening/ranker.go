package screening

import "sort"

// rank folds adjudication into final scores, applies the floors and caps the
// ranking properties require, filters below the surface threshold, and sorts.
// Deterministic for a fixed input: ties break on ascending record ID.
func (s *Service) rank(cands []*candidate, maxResults int) []MatchResult {
	type ranked struct {
		c     *candidate
		score float64
	}
	kept := make([]ranked, 0, len(cands))

	for _, c := range cands {
		score := c.preScore

		// The adjudicator shifts the score inside a bounded band; a
		// confidence of 0.5 is neutral.
		if c.judgment != nil {
			score = clamp01(score + s.cfg.LLMShiftBand*(c.judgment.Confidence-0.5)*2)
		}

		if c.textualHit() {
			// A literal name hit is never buried below the surface
			// threshold, whatever the adjudicator thought. Corroborated
			// by an exact birth date it stays in the high band.
			floor := s.cfg.SurfaceThreshold
			if c.context.DOB == DOBExact {
				floor = s.cfg.HighConfidenceThreshold
			}
			if score < floor {
				score = floor
			}
		} else if noContextSignal(c.context) {
			// An inferred hit with no corroborating attribute cannot
			// reach the high band on name similarity alone.
			ceiling := s.cfg.HighConfidenceThreshold - 0.05
			if score > ceiling {
				score = ceiling
			}
		}

		if score < s.cfg.SurfaceThreshold {
			continue
		}
		kept = append(kept, ranked{c: c, score: score})
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].c.record.ID < kept[j].c.record.ID
	})

	if maxResults > 0 && len(kept) > maxResults {
		kept = kept[:maxResults]
	}

	out := make([]MatchResult, len(kept))
	for i, r := range kept {
		out[i] = MatchResult{
			RecordID:    r.c.record.ID,
			PrimaryName: r.c.record.PrimaryName,
			Program:     r.c.record.Program,
			FinalScore:  r.score,
			RiskLevel:   s.riskBand(r.score),
			Explanation: s.explain(r.c, r.score),
		}
	}
	return out
}

func noContextSignal(ctx ContextAdjustment) bool {
	return ctx.DOB != DOBExact && ctx.DOB != DOBClose &&
		ctx.Nationality != FieldMatched && ctx.Address != FieldMatched
}

func (s *Service) riskBand(score float64) RiskLevel {
	switch {
	case score >= s.cfg.HighConfidenceThreshold:
		return RiskHigh
	case score >= s.cfg.MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
