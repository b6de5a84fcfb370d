package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vigil/internal/names"
	"vigil/internal/watchlist"
	"vigil/pkg/platform/sentinel"
)

// PostgresStore serves candidate lookups from the tables the ingestion
// pipeline populates. Schema:
//
//	watchlist_meta(version text, loaded_at timestamptz)
//	watchlist_records(id text pk, primary_name text, type text, program text,
//	    aliases text[], dob text, nationalities text[], addresses text[],
//	    remarks text)
//	watchlist_names(record_id text, normalized_name text, phonetic_key text)
//	watchlist_name_tokens(record_id text, token text)
//
// The names table carries one row per primary name and alias, the tokens
// table one row per distinct name token; the pipeline writes normalized
// forms, tokens, and phonetic keys at import time using the same encoders
// this process uses, so index and matcher always agree. The token table is
// what lets a query that is a token subset of a longer record name reach
// the matcher at all.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Version returns the most recently loaded snapshot identifier.
func (s *PostgresStore) Version(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM watchlist_meta ORDER BY loaded_at DESC LIMIT 1`,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("watchlist snapshot: %w", sentinel.ErrUnavailable)
		}
		return "", fmt.Errorf("query snapshot version: %w", err)
	}
	return version, nil
}

// LookupByVariant unions prefix matches on normalized names, per-token hits,
// and phonetic key equality, capped at limit and ordered by record ID.
// Overflow past the limit is cut in ID order; the caller over-fetches and
// prunes the window by name similarity.
func (s *PostgresStore) LookupByVariant(ctx context.Context, variants, phoneticKeys []string, limit int) ([]*watchlist.Record, string, error) {
	version, err := s.Version(ctx)
	if err != nil {
		return nil, "", err
	}

	prefixes := make([]string, 0, len(variants))
	seen := make(map[string]struct{})
	var tokens []string
	for _, v := range variants {
		norm := names.Normalize(v)
		if norm == "" {
			continue
		}
		prefixes = append(prefixes, norm+"%")
		for _, tok := range names.Tokens(v) {
			if len(tok) < 2 {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	if len(prefixes) == 0 && len(phoneticKeys) == 0 && len(tokens) == 0 {
		return nil, version, nil
	}

	query := `
		SELECT r.id, r.primary_name, r.type, r.program,
		       r.aliases, r.dob, r.nationalities, r.addresses, r.remarks
		FROM watchlist_records r
		WHERE r.id IN (
			SELECT record_id FROM watchlist_names
			WHERE normalized_name LIKE ANY($1) OR phonetic_key = ANY($2)
			UNION
			SELECT record_id FROM watchlist_name_tokens
			WHERE token = ANY($3)
		)
		ORDER BY r.id
		LIMIT $4
	`
	rows, err := s.db.QueryContext(ctx, query,
		pq.Array(prefixes), pq.Array(phoneticKeys), pq.Array(tokens), limit)
	if err != nil {
		return nil, "", fmt.Errorf("lookup watchlist records: %w", err)
	}
	defer rows.Close()

	var records []*watchlist.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, "", err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate watchlist records: %w", err)
	}
	return records, version, nil
}

func scanRecord(rows *sql.Rows) (*watchlist.Record, error) {
	var (
		rec           watchlist.Record
		aliases       pq.StringArray
		nationalities pq.StringArray
		addresses     pq.StringArray
		dob           sql.NullString
		remarks       sql.NullString
	)
	err := rows.Scan(&rec.ID, &rec.PrimaryName, &rec.Type, &rec.Program,
		&aliases, &dob, &nationalities, &addresses, &remarks)
	if err != nil {
		return nil, fmt.Errorf("scan watchlist record: %w", err)
	}
	rec.Aliases = aliases
	rec.Nationalities = nationalities
	rec.Addresses = addresses
	rec.Remarks = remarks.String

	// Structured fields win; fall back to remarks extraction for rows the
	// pipeline imported from the legacy CSV without parsed columns.
	if dob.Valid && dob.String != "" {
		rec.DateOfBirth = watchlist.ParseDate(dob.String)
	} else if rec.Remarks != "" {
		rec.DateOfBirth = watchlist.ParseDate(watchlist.ExtractDOB(rec.Remarks))
	}
	if len(rec.Nationalities) == 0 && rec.Remarks != "" {
		if nat := watchlist.ExtractNationality(rec.Remarks); nat != "" {
			rec.Nationalities = []string{nat}
		}
	}
	if len(rec.Aliases) == 0 && rec.Remarks != "" {
		rec.Aliases = watchlist.ExtractAliases(rec.Remarks)
	}
	return &rec, nil
}

// Stats summarizes the current snapshot for health and stats endpoints.
func (s *PostgresStore) Stats(ctx context.Context) (watchlist.Stats, error) {
	var stats watchlist.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE lower(type) LIKE '%individual%'),
		       count(DISTINCT program) FILTER (WHERE program <> '')
		FROM watchlist_records
	`).Scan(&stats.TotalRecords, &stats.Individuals, &stats.Programs)
	if err != nil {
		return watchlist.Stats{}, fmt.Errorf("query watchlist stats: %w", err)
	}
	stats.Entities = stats.TotalRecords - stats.Individuals
	return stats, nil
}

// Health verifies database reachability.
func (s *PostgresStore) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", sentinel.ErrUnavailable)
	}
	return nil
}

// NormalizedName returns the index form the ingestion pipeline must write to
// watchlist_names. Exposed so the importer and this store cannot drift.
func NormalizedName(name string) string { return names.Normalize(name) }

// PhoneticIndexKey returns the phonetic index form for watchlist_names.
func PhoneticIndexKey(name string) string { return names.PhoneticKey(name) }

// IndexTokens returns the name tokens the ingestion pipeline must write to
// watchlist_name_tokens. Single-letter tokens carry too little signal to
// index.
func IndexTokens(name string) []string {
	var out []string
	for _, tok := range names.Tokens(name) {
		if len(tok) >= 2 {
			out = append(out, tok)
		}
	}
	return out
}
