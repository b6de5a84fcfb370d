// Package store provides the record stores backing candidate retrieval.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vigil/internal/names"
	"vigil/internal/watchlist"
	"vigil/pkg/platform/sentinel"
)

// MemoryStore keeps one immutable snapshot of the watchlist in memory with
// name and phonetic indexes. Load swaps the whole snapshot atomically, so a
// lookup always sees one consistent version end-to-end.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	version     string
	records     []*watchlist.Record
	byName      map[string][]*watchlist.Record
	byToken     map[string][]*watchlist.Record
	byPhonetic  map[string][]*watchlist.Record
	sortedNames []string
}

// NewMemory constructs an empty memory store. Lookups against an unloaded
// store report the store as unavailable, mirroring an unreachable database.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// Load replaces the current snapshot. Records are indexed by the normalized
// form, the individual name tokens, and the phonetic key of the primary name
// and every alias. The token index is what lets a query that is a token
// subset of a longer record name reach the matcher at all.
func (s *MemoryStore) Load(version string, records []*watchlist.Record) {
	snap := &snapshot{
		version:    version,
		records:    records,
		byName:     make(map[string][]*watchlist.Record),
		byToken:    make(map[string][]*watchlist.Record),
		byPhonetic: make(map[string][]*watchlist.Record),
	}

	for _, rec := range records {
		tokens := make(map[string]struct{})
		for _, name := range rec.Names() {
			norm := names.Normalize(name)
			if norm == "" {
				continue
			}
			snap.byName[norm] = append(snap.byName[norm], rec)
			for _, tok := range names.Tokens(name) {
				if len(tok) >= 2 {
					tokens[tok] = struct{}{}
				}
			}
			if key := names.PhoneticKey(name); key != "" {
				snap.byPhonetic[key] = append(snap.byPhonetic[key], rec)
			}
		}
		for tok := range tokens {
			snap.byToken[tok] = append(snap.byToken[tok], rec)
		}
	}

	snap.sortedNames = make([]string, 0, len(snap.byName))
	for norm := range snap.byName {
		snap.sortedNames = append(snap.sortedNames, norm)
	}
	sort.Strings(snap.sortedNames)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *MemoryStore) current() (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return nil, sentinel.ErrUnavailable
	}
	return snap, nil
}

// Version returns the identifier of the loaded snapshot.
func (s *MemoryStore) Version(ctx context.Context) (string, error) {
	snap, err := s.current()
	if err != nil {
		return "", err
	}
	return snap.version, nil
}

// LookupByVariant unions exact-prefix, per-token, and phonetic-key hits over
// the indexes, capped at limit. Results are deduplicated and sorted by record
// ID so the candidate set is deterministic; the served snapshot version is
// returned alongside for the caller's consistency assertion.
func (s *MemoryStore) LookupByVariant(ctx context.Context, variants, phoneticKeys []string, limit int) ([]*watchlist.Record, string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, "", err
	}

	hits := make(map[string]*watchlist.Record)

	for _, variant := range variants {
		norm := names.Normalize(variant)
		if norm == "" {
			continue
		}
		// exact-prefix scan over the sorted normalized names
		idx := sort.SearchStrings(snap.sortedNames, norm)
		for ; idx < len(snap.sortedNames); idx++ {
			name := snap.sortedNames[idx]
			if !strings.HasPrefix(name, norm) {
				break
			}
			for _, rec := range snap.byName[name] {
				hits[rec.ID] = rec
			}
		}
		// single-letter tokens (initials) stay out of the token probes
		for _, tok := range names.Tokens(variant) {
			if len(tok) < 2 {
				continue
			}
			for _, rec := range snap.byToken[tok] {
				hits[rec.ID] = rec
			}
		}
	}

	for _, key := range phoneticKeys {
		for _, rec := range snap.byPhonetic[key] {
			hits[rec.ID] = rec
		}
	}

	out := make([]*watchlist.Record, 0, len(hits))
	for _, rec := range hits {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	// Overflow past the limit is cut in ID order. The store has no notion of
	// query relevance; the caller over-fetches and prunes the window by name
	// similarity.
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, snap.version, nil
}

// Stats summarizes the loaded snapshot.
func (s *MemoryStore) Stats(ctx context.Context) (watchlist.Stats, error) {
	snap, err := s.current()
	if err != nil {
		return watchlist.Stats{}, err
	}
	stats := watchlist.Stats{TotalRecords: len(snap.records)}
	programs := make(map[string]struct{})
	for _, rec := range snap.records {
		if strings.Contains(strings.ToLower(rec.Type), "individual") {
			stats.Individuals++
		} else {
			stats.Entities++
		}
		if rec.Program != "" {
			programs[rec.Program] = struct{}{}
		}
	}
	stats.Programs = len(programs)
	return stats, nil
}

// Health reports whether a snapshot is loaded.
func (s *MemoryStore) Health(ctx context.Context) error {
	_, err := s.current()
	return err
}
