package screening

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vigil/internal/watchlist"
	"vigil/internal/watchlist/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []*watchlist.Record {
	return []*watchlist.Record{
		{
			ID:          "1001",
			PrimaryName: "Vladimir PUTIN",
			Type:        "individual",
			Program:     "UKRAINE-EO13661",
			Aliases:     []string{"PUTIN, Vladimir Vladimirovich"},
			DateOfBirth: watchlist.Date{Year: 1952, Month: 10, Day: 7},
			Nationalities: []string{
				"Russia",
			},
			Addresses: []string{"Moscow, Russia"},
		},
		{
			ID:            "2001",
			PrimaryName:   "John SMITH",
			Type:          "individual",
			Program:       "SDGT",
			Aliases:       []string{"SMITH, Johnny"},
			DateOfBirth:   watchlist.Date{Year: 1980, Month: 1, Day: 15},
			Nationalities: []string{"United Kingdom"},
		},
		{
			ID:          "3001",
			PrimaryName: "ACME Trading LLC",
			Type:        "entity",
			Program:     "IRAN",
		},
	}
}

func loadedStore(records []*watchlist.Record) *store.MemoryStore {
	s := store.NewMemory()
	s.Load("snap-test-1", records)
	return s
}

// stubAdjudicator is the in-package test double; the real HTTP client lives
// in internal/adjudicator.
type stubAdjudicator struct {
	confidence float64
	risk       RiskLevel
	rationale  string
	err        error
	delay      time.Duration

	mu    sync.Mutex
	calls int
}

func (s *stubAdjudicator) Adjudicate(ctx context.Context, _ AdjudicationRequest) (*Judgment, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	risk := s.risk
	if risk == "" {
		risk = RiskMedium
	}
	return &Judgment{Confidence: s.confidence, RiskLevel: risk, Rationale: s.rationale}, nil
}

func (s *stubAdjudicator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestService(t *testing.T, rs RecordStore, adj Adjudicator, mutate func(*Config)) *Service {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := NewService(rs, adj, cfg, testLogger(), nil, nil, nil)
	require.NoError(t, err)
	return svc
}
