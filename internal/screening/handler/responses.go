package handler

import (
	"vigil/internal/screening"
)

// ScreenResponse is the HTTP response for POST /screen.
type ScreenResponse struct {
	Query           string          `json:"query"`
	SnapshotVersion string          `json:"snapshot_version"`
	TotalMatches    int             `json:"total_matches"`
	Partial         bool            `json:"partial"`
	Results         []MatchResponse `json:"results"`
}

// MatchResponse is one surfaced match.
type MatchResponse struct {
	RecordID    string   `json:"record_id"`
	PrimaryName string   `json:"primary_name"`
	Program     string   `json:"program,omitempty"`
	Score       float64  `json:"score"`
	RiskLevel   string   `json:"risk_level"`
	Explanation []string `json:"explanation"`
}

// FromResult converts a domain ScreenResult to an HTTP response.
func FromResult(result *screening.ScreenResult) *ScreenResponse {
	matches := make([]MatchResponse, len(result.Results))
	for i, m := range result.Results {
		matches[i] = MatchResponse{
			RecordID:    m.RecordID,
			PrimaryName: m.PrimaryName,
			Program:     m.Program,
			Score:       m.FinalScore,
			RiskLevel:   string(m.RiskLevel),
			Explanation: m.Explanation,
		}
	}
	return &ScreenResponse{
		Query:           result.Query.RawText,
		SnapshotVersion: result.SnapshotVersion,
		TotalMatches:    len(matches),
		Partial:         result.Partial,
		Results:         matches,
	}
}

// HealthResponse is the HTTP response for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the HTTP response for GET /stats.
type StatsResponse struct {
	SnapshotVersion string `json:"snapshot_version"`
	TotalRecords    int    `json:"total_records"`
	Individuals     int    `json:"individuals"`
	Entities        int    `json:"entities"`
	Programs        int    `json:"programs"`
}

// FromStats converts a domain StatsReport to an HTTP response.
func FromStats(report screening.StatsReport) StatsResponse {
	return StatsResponse{
		SnapshotVersion: report.SnapshotVersion,
		TotalRecords:    report.Watchlist.TotalRecords,
		Individuals:     report.Watchlist.Individuals,
		Entities:        report.Watchlist.Entities,
		Programs:        report.Watchlist.Programs,
	}
}
