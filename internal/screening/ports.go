package screening

import (
	"context"

	"vigil/internal/watchlist"
)

// RecordStore is the read-only watchlist boundary. Implementations must
// return the snapshot version each lookup was served from so one request
// sees one consistent view; they support unbounded concurrent readers.
type RecordStore interface {
	Version(ctx context.Context) (string, error)
	LookupByVariant(ctx context.Context, variants, phoneticKeys []string, limit int) ([]*watchlist.Record, string, error)
	Stats(ctx context.Context) (watchlist.Stats, error)
	Health(ctx context.Context) error
}

// AdjudicationRequest carries the evidence the external reasoning service
// judges: the query as provided, the full candidate record, and the signals
// the engine already computed, so the service reasons over evidence rather
// than raw text alone.
type AdjudicationRequest struct {
	QuerySummary    QuerySummary
	Candidate       *watchlist.Record
	StrategySignals []StrategyScore
	ContextSignals  ContextAdjustment
}

// QuerySummary is the caller-provided identity, restated for the adjudicator.
type QuerySummary struct {
	Name        string
	DateOfBirth string
	Nationality string
	Address     string
}

// Adjudicator is the external LLM judgment boundary. Implementations must
// honor ctx cancellation and return a typed error (never a silent empty
// judgment) on failure; the engine degrades that candidate and moves on.
type Adjudicator interface {
	Adjudicate(ctx context.Context, req AdjudicationRequest) (*Judgment, error)
}
