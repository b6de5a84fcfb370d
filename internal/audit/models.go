// Package audit records a durable trail of screening decisions. Events
// carry a hash of the query rather than the query itself so the trail never
// stores personal data in the clear.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Event is one screening decision. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id"`
	QueryHash       string    `json:"query_hash"`
	SnapshotVersion string    `json:"snapshot_version"`
	MatchCount      int       `json:"match_count"`
	TopScore        float64   `json:"top_score,omitempty"`
	TopRisk         string    `json:"top_risk,omitempty"`
	Partial         bool      `json:"partial,omitempty"`
}

// HashQuery derives the stored form of a query string.
func HashQuery(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

// Store is an append-only sink for events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
