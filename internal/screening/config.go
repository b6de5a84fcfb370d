package screening

import (
	"fmt"
	"time"
)

// Config carries the engine tunables. The numeric fusion constants are
// deliberately configuration, validated against the ranking properties in
// the package tests rather than assumed.
type Config struct {
	// FuzzyFloor is the minimum similarity ratio for the FUZZY strategy
	// to fire.
	FuzzyFloor float64

	// PhoneticEnabled toggles the PHONETIC strategy.
	PhoneticEnabled bool

	// PhoneticScore is the fixed score a phonetic key hit contributes;
	// phonetic equality is binary, not graded.
	PhoneticScore float64

	// DOBMismatchPenalty is subtracted when a known DOB disagrees and the
	// best name hit is only fuzzy or phonetic.
	DOBMismatchPenalty float64

	// SurfaceThreshold drops candidates from output entirely.
	SurfaceThreshold float64

	// HighConfidenceThreshold is the floor of the HIGH risk band.
	HighConfidenceThreshold float64

	// MediumThreshold is the floor of the MEDIUM risk band.
	MediumThreshold float64

	// LLMPrefilterThreshold gates which candidates are sent for
	// adjudication.
	LLMPrefilterThreshold float64

	// LLMShiftBand bounds how far a judgment can move the final score.
	LLMShiftBand float64

	// LLMConcurrencyLimit caps concurrent adjudication calls.
	LLMConcurrencyLimit int

	// LLMTimeout bounds each adjudication call.
	LLMTimeout time.Duration

	// CandidateLimit caps the retrieved candidate set (N_max).
	CandidateLimit int

	// MatcherConcurrency caps the strategy-matching fan-out.
	MatcherConcurrency int

	// MaxVariants caps generated name variants.
	MaxVariants int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyFloor:              0.80,
		PhoneticEnabled:         true,
		PhoneticScore:           0.75,
		DOBMismatchPenalty:      0.35,
		SurfaceThreshold:        0.45,
		HighConfidenceThreshold: 0.85,
		MediumThreshold:         0.65,
		LLMPrefilterThreshold:   0.50,
		LLMShiftBand:            0.20,
		LLMConcurrencyLimit:     4,
		LLMTimeout:              10 * time.Second,
		CandidateLimit:          500,
		MatcherConcurrency:      8,
		MaxVariants:             8,
	}
}

// Validate rejects configurations that would violate the engine's ranking
// invariants.
func (c Config) Validate() error {
	inUnit := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
		return nil
	}
	for name, v := range map[string]float64{
		"fuzzy_floor":               c.FuzzyFloor,
		"phonetic_score":            c.PhoneticScore,
		"dob_mismatch_penalty":      c.DOBMismatchPenalty,
		"surface_threshold":         c.SurfaceThreshold,
		"high_confidence_threshold": c.HighConfidenceThreshold,
		"medium_threshold":          c.MediumThreshold,
		"llm_prefilter_threshold":   c.LLMPrefilterThreshold,
		"llm_shift_band":            c.LLMShiftBand,
	} {
		if err := inUnit(name, v); err != nil {
			return err
		}
	}
	if c.MediumThreshold > c.HighConfidenceThreshold {
		return fmt.Errorf("medium_threshold %v exceeds high_confidence_threshold %v",
			c.MediumThreshold, c.HighConfidenceThreshold)
	}
	if c.LLMConcurrencyLimit < 1 {
		return fmt.Errorf("llm_concurrency_limit must be at least 1, got %d", c.LLMConcurrencyLimit)
	}
	if c.CandidateLimit < 1 {
		return fmt.Errorf("candidate_limit must be at least 1, got %d", c.CandidateLimit)
	}
	if c.MatcherConcurrency < 1 {
		return fmt.Errorf("matcher_concurrency must be at least 1, got %d", c.MatcherConcurrency)
	}
	if c.MaxVariants < 1 {
		return fmt.Errorf("max_variants must be at least 1, got %d", c.MaxVariants)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm_timeout must be positive, got %v", c.LLMTimeout)
	}
	return nil
}
