package adjudicator

import (
	"context"
	"time"

	"vigil/internal/screening"
)

// Stub is a deterministic in-process adjudicator for tests and local runs.
type Stub struct {
	Latency    time.Duration
	Confidence float64
	RiskLevel  screening.RiskLevel
	Rationale  string
	Err        error
}

func (s Stub) Adjudicate(ctx context.Context, _ screening.AdjudicationRequest) (*screening.Judgment, error) {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Latency):
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	risk := s.RiskLevel
	if risk == "" {
		risk = screening.RiskMedium
	}
	rationale := s.Rationale
	if rationale == "" {
		rationale = "stub judgment"
	}
	return &screening.Judgment{
		Confidence: s.Confidence,
		RiskLevel:  risk,
		Rationale:  rationale,
	}, nil
}
