package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"vigil/internal/audit"
	"vigil/internal/names"
	"vigil/internal/platform/metrics"
	"vigil/internal/watchlist"
	"vigil/pkg/requestcontext"
)

// Service runs the screening pipeline. It is stateless between requests;
// all watchlist state lives behind the RecordStore.
type Service struct {
	store       RecordStore
	adjudicator Adjudicator
	cfg         Config
	logger      *slog.Logger
	metrics     *metrics.Metrics
	audit       *audit.Publisher
	tracer      trace.Tracer
}

// NewService wires the pipeline. adjudicator, metrics, and publisher may be
// nil: the engine then runs deterministic-only, unmetered, or untrailed.
func NewService(store RecordStore, adjudicator Adjudicator, cfg Config, logger *slog.Logger, m *metrics.Metrics, publisher *audit.Publisher, tracer trace.Tracer) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate screening config: %w", err)
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("screening")
	}
	return &Service{
		store:       store,
		adjudicator: adjudicator,
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
		audit:       publisher,
		tracer:      tracer,
	}, nil
}

// Screen runs one query through the full pipeline against one consistent
// watchlist snapshot.
func (s *Service) Screen(ctx context.Context, req ScreenRequest) (*ScreenResult, error) {
	ctx, span := s.tracer.Start(ctx, "screening.Screen")
	defer span.End()
	start := time.Now()

	query, err := ParseQuery(req)
	if err != nil {
		return nil, err
	}

	variants := GenerateVariants(query, s.cfg.MaxVariants)

	// Over-fetch so pruning can pick the most relevant N rather than an
	// arbitrary store-ordered N.
	records, version, err := s.store.LookupByVariant(ctx,
		probeStrings(variants), phoneticProbes(variants), s.cfg.CandidateLimit*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	records = pruneByRelevance(records, variants, s.cfg.CandidateLimit)
	span.SetAttributes(
		attribute.Int("screening.candidates", len(records)),
		attribute.String("screening.snapshot_version", version),
	)

	cands, err := s.matchCandidates(ctx, records, variants)
	if err != nil {
		return nil, fmt.Errorf("match candidates: %w", err)
	}
	for _, c := range cands {
		for _, strat := range strategyOrder {
			if _, ok := c.scores[strat]; ok {
				s.metrics.IncStrategyHit(string(strat))
			}
		}
	}

	s.scoreContext(query, cands)

	partial := s.adjudicate(ctx, query, cands)

	results := s.rank(cands, req.MaxResults)

	s.observe(ctx, query, version, results, partial, time.Since(start))

	return &ScreenResult{
		Query:           query,
		SnapshotVersion: version,
		Results:         results,
		Partial:         partial,
	}, nil
}

// adjudicate fans candidate judgments out to the external reasoner.
// Failures degrade the individual candidate, never the request; the report
// value is true when the request deadline cut adjudication short.
func (s *Service) adjudicate(ctx context.Context, q Query, cands []*candidate) bool {
	if s.adjudicator == nil {
		return false
	}

	summary := QuerySummary{
		Name:        q.RawText,
		DateOfBirth: q.DateOfBirth.String(),
		Nationality: q.Nationality,
		Address:     q.Address,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.LLMConcurrencyLimit)

	for _, c := range cands {
		if c.preScore < s.cfg.LLMPrefilterThreshold {
			s.metrics.IncAdjudication("skipped")
			continue
		}
		c.adjudicated = true

		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.cfg.LLMTimeout)
			defer cancel()

			judgment, err := s.adjudicator.Adjudicate(callCtx, AdjudicationRequest{
				QuerySummary:    summary,
				Candidate:       c.record,
				StrategySignals: orderedScores(c),
				ContextSignals:  c.context,
			})
			if err != nil {
				c.degraded = true
				s.metrics.IncAdjudication("failed")
				s.logger.WarnContext(ctx, "adjudication failed, degrading candidate",
					"error", err,
					"record_id", c.record.ID,
				)
				return nil
			}
			c.judgment = judgment
			s.metrics.IncAdjudication("ok")
			return nil
		})
	}

	// Workers only return nil; Wait pends on completion.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		// Deadline hit mid-flight: anything still unjudged degrades.
		for _, c := range cands {
			if c.adjudicated && c.judgment == nil {
				c.degraded = true
			}
		}
		return true
	}
	return false
}

func (s *Service) observe(ctx context.Context, q Query, version string, results []MatchResult, partial bool, elapsed time.Duration) {
	s.metrics.ObserveScreenDuration(elapsed)
	byRisk := make(map[string]int, 3)
	for _, r := range results {
		byRisk[string(r.RiskLevel)]++
	}
	s.metrics.AddResults(byRisk)
	if partial {
		s.metrics.IncPartialResponse()
	}

	event := audit.Event{
		RequestID:       requestcontext.RequestID(ctx),
		QueryHash:       audit.HashQuery(q.RawText),
		SnapshotVersion: version,
		MatchCount:      len(results),
		Partial:         partial,
	}
	if len(results) > 0 {
		event.TopScore = results[0].FinalScore
		event.TopRisk = string(results[0].RiskLevel)
	}
	s.audit.Emit(ctx, event)

	s.logger.InfoContext(ctx, "screening completed",
		"request_id", event.RequestID,
		"snapshot_version", version,
		"matches", len(results),
		"partial", partial,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// Stats reports watchlist composition for the stats endpoint.
func (s *Service) Stats(ctx context.Context) (StatsReport, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return StatsReport{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	version, err := s.store.Version(ctx)
	if err != nil {
		return StatsReport{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return StatsReport{Watchlist: stats, SnapshotVersion: version}, nil
}

// Health reports store readiness.
func (s *Service) Health(ctx context.Context) error {
	if err := s.store.Health(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// pruneByRelevance keeps the limit most name-relevant records, judged by
// similarity of the normalized primary name to the first variant. The kept
// set is re-sorted by ID so downstream order stays canonical.
func pruneByRelevance(records []*watchlist.Record, variants []NameVariant, limit int) []*watchlist.Record {
	if len(records) <= limit || len(variants) == 0 {
		return records
	}
	probe := names.Normalize(variants[0].Text)

	type scored struct {
		rec   *watchlist.Record
		ratio float64
	}
	ranked := make([]scored, len(records))
	for i, rec := range records {
		ranked[i] = scored{rec: rec, ratio: names.Ratio(probe, names.Normalize(rec.PrimaryName))}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ratio != ranked[j].ratio {
			return ranked[i].ratio > ranked[j].ratio
		}
		return ranked[i].rec.ID < ranked[j].rec.ID
	})

	kept := make([]*watchlist.Record, limit)
	for i := range kept {
		kept[i] = ranked[i].rec
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })
	return kept
}

func orderedScores(c *candidate) []StrategyScore {
	out := make([]StrategyScore, 0, len(c.scores))
	for _, strat := range strategyOrder {
		if sc, ok := c.scores[strat]; ok {
			out = append(out, sc)
		}
	}
	return out
}

// StatsReport pairs watchlist composition with the serving snapshot.
type StatsReport struct {
	Watchlist       watchlist.Stats
	SnapshotVersion string
}
