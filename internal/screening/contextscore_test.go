package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vigil/internal/watchlist"
)

func TestCompareDOB(t *testing.T) {
	full := watchlist.Date{Year: 1952, Month: 10, Day: 7}
	yearOnly := watchlist.Date{Year: 1952}

	tests := []struct {
		name   string
		query  watchlist.Date
		record watchlist.Date
		want   DOBMatch
	}{
		{"both unknown", watchlist.Date{}, watchlist.Date{}, DOBUnknown},
		{"query unknown", watchlist.Date{}, full, DOBUnknown},
		{"record unknown", full, watchlist.Date{}, DOBUnknown},
		{"full match", full, full, DOBExact},
		{"year only both sides", yearOnly, yearOnly, DOBClose},
		{"year only one side", yearOnly, full, DOBClose},
		{"same year different day", watchlist.Date{Year: 1952, Month: 3, Day: 1}, full, DOBMismatch},
		{"different year", watchlist.Date{Year: 1975}, full, DOBMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompareDOB(tc.query, tc.record))
		})
	}
}

func TestCompareAttribute(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		values []string
		want   FieldMatch
	}{
		{"empty query", "", []string{"Russia"}, FieldUnknown},
		{"no record values", "Russia", nil, FieldUnknown},
		{"equal", "Russia", []string{"Russia"}, FieldMatched},
		{"case and punctuation folded", "russia", []string{"Russia"}, FieldMatched},
		{"containment", "Moscow", []string{"Moscow, Russia"}, FieldMatched},
		{"high similarity", "Russian Federation", []string{"Russian Federaton"}, FieldMatched},
		{"disjoint", "Germany", []string{"Russia"}, FieldMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, compareAttribute(tc.query, tc.values))
		})
	}
}

func TestFuse(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	fuzzyOnly := func(value float64) *candidate {
		return &candidate{scores: map[Strategy]StrategyScore{
			StrategyFuzzy: {Strategy: StrategyFuzzy, Value: value},
		}}
	}
	exactHit := func() *candidate {
		return &candidate{scores: map[Strategy]StrategyScore{
			StrategyExact: {Strategy: StrategyExact, Value: 1.0},
		}}
	}

	t.Run("dob exact boosts", func(t *testing.T) {
		c := fuzzyOnly(0.8)
		c.context = ContextAdjustment{DOB: DOBExact, Nationality: FieldUnknown, Address: FieldUnknown}
		assert.InDelta(t, 0.9, svc.fuse(c), 0.001)
	})

	t.Run("dob close boosts less", func(t *testing.T) {
		c := fuzzyOnly(0.8)
		c.context = ContextAdjustment{DOB: DOBClose, Nationality: FieldUnknown, Address: FieldUnknown}
		assert.InDelta(t, 0.85, svc.fuse(c), 0.001)
	})

	t.Run("dob mismatch penalizes inferred hits hard", func(t *testing.T) {
		c := fuzzyOnly(0.8)
		c.context = ContextAdjustment{DOB: DOBMismatch, Nationality: FieldUnknown, Address: FieldUnknown}
		assert.InDelta(t, 0.45, svc.fuse(c), 0.001)
	})

	t.Run("dob mismatch on literal hit keeps a floor", func(t *testing.T) {
		c := exactHit()
		c.context = ContextAdjustment{DOB: DOBMismatch, Nationality: FieldUnknown, Address: FieldUnknown}
		assert.InDelta(t, 0.85, svc.fuse(c), 0.001)
	})

	t.Run("nationality and address nudge", func(t *testing.T) {
		c := fuzzyOnly(0.8)
		c.context = ContextAdjustment{DOB: DOBUnknown, Nationality: FieldMatched, Address: FieldMismatch}
		assert.InDelta(t, 0.8, svc.fuse(c), 0.001)
	})

	t.Run("clamped to unit interval", func(t *testing.T) {
		c := exactHit()
		c.context = ContextAdjustment{DOB: DOBExact, Nationality: FieldMatched, Address: FieldMatched}
		assert.Equal(t, 1.0, svc.fuse(c))
	})
}
