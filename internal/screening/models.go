// Package screening implements the sanctions matching and ranking engine:
// query normalization, name variant generation, candidate retrieval,
// multi-strategy matching, context scoring, LLM adjudication, ranking, and
// explanation generation. One Screen call runs the whole pipeline over one
// consistent watchlist snapshot.
package screening

import (
	"vigil/internal/watchlist"
)

// Query is the parsed, immutable form of a screening request.
type Query struct {
	RawText     string
	NameTokens  []string
	DateOfBirth watchlist.Date
	Nationality string
	Address     string
}

// VariantRule tags how a name variant was derived, for explanations.
type VariantRule string

const (
	RuleAsIs            VariantRule = "as-is"
	RuleCaseFolded      VariantRule = "case-folded"
	RuleSurnameFirst    VariantRule = "surname-first"
	RuleInitials        VariantRule = "initials"
	RuleInitialsSurname VariantRule = "initials-surname"
	RuleNoMiddle        VariantRule = "no-middle"
)

// NameVariant is one derived probe string plus the rule that produced it.
type NameVariant struct {
	Text string
	Rule VariantRule
}

// Strategy identifies one of the four independent matchers.
type Strategy string

const (
	StrategyExact    Strategy = "EXACT"
	StrategyFuzzy    Strategy = "FUZZY"
	StrategyPhonetic Strategy = "PHONETIC"
	StrategyAlias    Strategy = "ALIAS"
)

// strategyOrder fixes iteration order wherever per-strategy scores are
// walked, so output never depends on map ordering.
var strategyOrder = [...]Strategy{StrategyExact, StrategyAlias, StrategyFuzzy, StrategyPhonetic}

// StrategyScore is one matcher firing on one candidate. Value is in [0,1];
// EXACT and ALIAS always carry 1.0.
type StrategyScore struct {
	Strategy       Strategy
	Value          float64
	MatchedVariant NameVariant
	MatchedField   string // "primary_name" or "alias"
	MatchedName    string
}

// DOBMatch classifies the date-of-birth comparison.
type DOBMatch string

const (
	DOBExact    DOBMatch = "EXACT"
	DOBClose    DOBMatch = "CLOSE"
	DOBMismatch DOBMatch = "MISMATCH"
	DOBUnknown  DOBMatch = "UNKNOWN"
)

// FieldMatch classifies a set-intersection attribute comparison.
type FieldMatch string

const (
	FieldMatched  FieldMatch = "MATCH"
	FieldMismatch FieldMatch = "MISMATCH"
	FieldUnknown  FieldMatch = "UNKNOWN"
)

// ContextAdjustment is the structured-attribute comparison for a candidate.
type ContextAdjustment struct {
	DOB         DOBMatch
	Nationality FieldMatch
	Address     FieldMatch
}

// RiskLevel is the three-level confidence band surfaced to callers.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Judgment is the adjudicator's probabilistic assessment of one candidate.
type Judgment struct {
	Confidence float64
	RiskLevel  RiskLevel
	Rationale  string
}

// candidate accumulates per-stage state for one record as it moves through
// the pipeline. It never leaves the package.
type candidate struct {
	record   *watchlist.Record
	scores   map[Strategy]StrategyScore // best score per strategy
	context  ContextAdjustment
	preScore float64 // strategy+context fusion, before adjudication

	judgment    *Judgment
	adjudicated bool // sent to the adjudicator (passed the pre-filter)
	degraded    bool // adjudication attempted and failed or timed out
}

// bestStrategy returns the highest-value strategy score, preferring the
// fixed strategy order on ties.
func (c *candidate) bestStrategy() (StrategyScore, bool) {
	var best StrategyScore
	found := false
	for _, s := range strategyOrder {
		sc, ok := c.scores[s]
		if !ok {
			continue
		}
		if !found || sc.Value > best.Value {
			best = sc
			found = true
		}
	}
	return best, found
}

// textualHit reports whether EXACT or ALIAS fired — a literal name hit, as
// opposed to an inferred fuzzy or phonetic one.
func (c *candidate) textualHit() bool {
	_, exact := c.scores[StrategyExact]
	_, alias := c.scores[StrategyAlias]
	return exact || alias
}

// MatchResult is one surfaced match. Immutable; produced once per ranking
// run and never cached across queries.
type MatchResult struct {
	RecordID    string
	PrimaryName string
	Program     string
	FinalScore  float64
	RiskLevel   RiskLevel
	Explanation []string
}

// ScreenRequest is the engine's public input.
type ScreenRequest struct {
	QueryText       string
	DOBHint         string
	NationalityHint string
	AddressHint     string
	MaxResults      int
}

// ScreenResult is the engine's public output.
type ScreenResult struct {
	Query           Query
	SnapshotVersion string
	Results         []MatchResult
	Partial         bool // deadline hit before adjudication completed
}
