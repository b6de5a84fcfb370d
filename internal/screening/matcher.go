package screening

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"vigil/internal/names"
	"vigil/internal/watchlist"
)

const (
	fieldPrimaryName = "primary_name"
	fieldAlias       = "alias"
)

// matchCandidates runs the four strategies over every (candidate, variant)
// pair, fanned out across workers. Candidates with no firing strategy are
// dropped — the primary precision filter over the retrieval set. The result
// is sorted by record ID so downstream scoring is independent of completion
// order.
func (s *Service) matchCandidates(ctx context.Context, records []*watchlist.Record, variants []NameVariant) ([]*candidate, error) {
	matched := make([]*candidate, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MatcherConcurrency)

	for i, rec := range records {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if c := s.matchOne(rec, variants); c != nil {
				matched[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*candidate, 0, len(matched))
	for _, c := range matched {
		if c != nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].record.ID < out[j].record.ID })
	return out, nil
}

// matchOne attempts all four strategies for one record, keeping the best
// score per strategy across variants. Returns nil when nothing fires.
func (s *Service) matchOne(rec *watchlist.Record, variants []NameVariant) *candidate {
	c := &candidate{record: rec, scores: make(map[Strategy]StrategyScore, 4)}

	primaryNorm := names.Normalize(rec.PrimaryName)
	primaryKey := names.PhoneticKey(rec.PrimaryName)

	aliasNorms := make([]string, len(rec.Aliases))
	aliasKeys := make([]string, len(rec.Aliases))
	for i, alias := range rec.Aliases {
		aliasNorms[i] = names.Normalize(alias)
		aliasKeys[i] = names.PhoneticKey(alias)
	}

	for _, variant := range variants {
		norm := names.Normalize(variant.Text)
		if norm == "" {
			continue
		}

		// EXACT: normalized full-string equality on any name field.
		if norm == primaryNorm {
			record(c, StrategyExact, 1.0, variant, fieldPrimaryName, rec.PrimaryName)
		}
		for i, aliasNorm := range aliasNorms {
			if norm != aliasNorm || aliasNorm == "" {
				continue
			}
			record(c, StrategyExact, 1.0, variant, fieldAlias, rec.Aliases[i])
			// ALIAS: same equality rule, scoped to aliases only.
			record(c, StrategyAlias, 1.0, variant, fieldAlias, rec.Aliases[i])
		}

		// FUZZY: best similarity ratio across name fields, gated by the
		// floor.
		if ratio := fuzzyRatio(norm, primaryNorm); ratio >= s.cfg.FuzzyFloor {
			record(c, StrategyFuzzy, ratio, variant, fieldPrimaryName, rec.PrimaryName)
		}
		for i, aliasNorm := range aliasNorms {
			if aliasNorm == "" {
				continue
			}
			if ratio := fuzzyRatio(norm, aliasNorm); ratio >= s.cfg.FuzzyFloor {
				record(c, StrategyFuzzy, ratio, variant, fieldAlias, rec.Aliases[i])
			}
		}

		// PHONETIC: binary key equality, fixed score.
		if s.cfg.PhoneticEnabled {
			key := names.PhoneticKey(variant.Text)
			if key != "" && key == primaryKey {
				record(c, StrategyPhonetic, s.cfg.PhoneticScore, variant, fieldPrimaryName, rec.PrimaryName)
			}
			for i, aliasKey := range aliasKeys {
				if key != "" && key == aliasKey {
					record(c, StrategyPhonetic, s.cfg.PhoneticScore, variant, fieldAlias, rec.Aliases[i])
				}
			}
		}
	}

	if len(c.scores) == 0 {
		return nil
	}
	return c
}

// record keeps the highest-value score per strategy. Earlier variants win
// ties, keeping the outcome deterministic for equal-value hits.
func record(c *candidate, strategy Strategy, value float64, variant NameVariant, field, name string) {
	if existing, ok := c.scores[strategy]; ok && existing.Value >= value {
		return
	}
	c.scores[strategy] = StrategyScore{
		Strategy:       strategy,
		Value:          value,
		MatchedVariant: variant,
		MatchedField:   field,
		MatchedName:    name,
	}
}

// fuzzyRatio is the best of the similarity signals: plain ratio, sorted-token
// ratio for reordered names, token-set ratio for subset and superset names,
// and partial ratio for a name embedded in a longer form.
func fuzzyRatio(a, b string) float64 {
	ratio := names.Ratio(a, b)
	for _, r := range [...]float64{
		names.TokenSortRatio(a, b),
		names.TokenSetRatio(a, b),
		names.PartialRatio(a, b),
	} {
		if r > ratio {
			ratio = r
		}
	}
	return ratio
}
