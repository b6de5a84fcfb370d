package screening

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/internal/watchlist"
)

func asIs(text string) []NameVariant {
	return []NameVariant{{Text: text, Rule: RuleAsIs}}
}

func TestMatchOne(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	putin := testRecords()[0]

	t.Run("exact on primary name", func(t *testing.T) {
		c := svc.matchOne(putin, asIs("vladimir putin"))
		require.NotNil(t, c)

		sc, ok := c.scores[StrategyExact]
		require.True(t, ok)
		assert.Equal(t, 1.0, sc.Value)
		assert.Equal(t, fieldPrimaryName, sc.MatchedField)
		_, alias := c.scores[StrategyAlias]
		assert.False(t, alias, "primary-name hit must not fire ALIAS")
	})

	t.Run("alias hit fires both exact and alias", func(t *testing.T) {
		c := svc.matchOne(putin, asIs("Putin Vladimir Vladimirovich"))
		require.NotNil(t, c)

		exact, ok := c.scores[StrategyExact]
		require.True(t, ok)
		assert.Equal(t, fieldAlias, exact.MatchedField)

		alias, ok := c.scores[StrategyAlias]
		require.True(t, ok)
		assert.Equal(t, 1.0, alias.Value)
		assert.Equal(t, "PUTIN, Vladimir Vladimirovich", alias.MatchedName)
	})

	t.Run("fuzzy fires above the floor", func(t *testing.T) {
		smith := testRecords()[1]
		c := svc.matchOne(smith, asIs("Jon Smyth"))
		require.NotNil(t, c)

		fuzzy, ok := c.scores[StrategyFuzzy]
		require.True(t, ok)
		assert.InDelta(t, 0.8, fuzzy.Value, 0.001)

		_, exact := c.scores[StrategyExact]
		assert.False(t, exact)
	})

	t.Run("phonetic fires on key equality", func(t *testing.T) {
		smith := testRecords()[1]
		c := svc.matchOne(smith, asIs("Jon Smyth"))
		require.NotNil(t, c)

		phonetic, ok := c.scores[StrategyPhonetic]
		require.True(t, ok)
		assert.Equal(t, svc.cfg.PhoneticScore, phonetic.Value)
	})

	t.Run("phonetic disabled", func(t *testing.T) {
		off := newTestService(t, nil, nil, func(cfg *Config) { cfg.PhoneticEnabled = false })
		smith := testRecords()[1]
		c := off.matchOne(smith, asIs("Jon Smyth"))
		require.NotNil(t, c)
		_, ok := c.scores[StrategyPhonetic]
		assert.False(t, ok)
	})

	t.Run("fuzzy fires on a token subset of the primary name", func(t *testing.T) {
		rec := &watchlist.Record{ID: "7001", PrimaryName: "Vladimir Vladimirovich PUTIN"}
		c := svc.matchOne(rec, asIs("Vladimir Putin"))
		require.NotNil(t, c)

		fuzzy, ok := c.scores[StrategyFuzzy]
		require.True(t, ok)
		assert.Equal(t, 1.0, fuzzy.Value)

		_, exact := c.scores[StrategyExact]
		assert.False(t, exact, "a token subset is not a full-string hit")
	})

	t.Run("no strategy means no candidate", func(t *testing.T) {
		c := svc.matchOne(putin, asIs("Angela Merkel"))
		assert.Nil(t, c)
	})

	t.Run("best score per strategy wins across variants", func(t *testing.T) {
		variants := []NameVariant{
			{Text: "Vladimi Putin", Rule: RuleAsIs},  // close
			{Text: "vladimir putin", Rule: RuleCaseFolded}, // exact, so fuzzy 1.0
		}
		c := svc.matchOne(putin, variants)
		require.NotNil(t, c)
		assert.Equal(t, 1.0, c.scores[StrategyFuzzy].Value)
		assert.Equal(t, RuleCaseFolded, c.scores[StrategyFuzzy].MatchedVariant.Rule)
	})
}

func TestMatchCandidates(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	records := []*watchlist.Record{
		{ID: "9002", PrimaryName: "Jon SMYTH"},
		{ID: "9001", PrimaryName: "John SMITH"},
		{ID: "9003", PrimaryName: "Completely Unrelated"},
	}

	cands, err := svc.matchCandidates(context.Background(), records, asIs("Jon Smyth"))
	require.NoError(t, err)

	require.Len(t, cands, 2)
	assert.Equal(t, "9001", cands[0].record.ID)
	assert.Equal(t, "9002", cands[1].record.ID)
}

func TestMatchCandidatesCancelled(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.matchCandidates(ctx, testRecords(), asIs("Vladimir Putin"))
	assert.ErrorIs(t, err, context.Canceled)
}
