// Package adjudicator provides clients for the external LLM judgment
// service. The engine treats the service as a black box that returns a
// confidence, a risk level, and a rationale for one candidate at a time.
package adjudicator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vigil/internal/screening"
	"vigil/internal/watchlist"
	"vigil/pkg/platform/sentinel"
)

const defaultTimeout = 10 * time.Second

// HTTPClient calls an adjudication service over HTTP JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs a client for the service at baseURL. The
// per-call deadline comes from the caller's context; the embedded client
// timeout is a backstop.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type adjudicateRequest struct {
	QuerySummary    querySummary      `json:"query_summary"`
	CandidateRecord candidateRecord   `json:"candidate_record"`
	StrategySignals []strategySignal  `json:"strategy_signals"`
	ContextSignals  map[string]string `json:"context_signals"`
}

type querySummary struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Address     string `json:"address,omitempty"`
}

type candidateRecord struct {
	ID            string   `json:"id"`
	PrimaryName   string   `json:"primary_name"`
	Type          string   `json:"type,omitempty"`
	Program       string   `json:"program,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Nationalities []string `json:"nationalities,omitempty"`
	Addresses     []string `json:"addresses,omitempty"`
	Remarks       string   `json:"remarks,omitempty"`
}

type strategySignal struct {
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
	Variant  string  `json:"variant"`
	Field    string  `json:"field"`
}

type adjudicateResponse struct {
	Confidence float64 `json:"confidence"`
	RiskLevel  string  `json:"risk_level"`
	Rationale  string  `json:"rationale"`
}

// Adjudicate sends one candidate for judgment. Transport failures map to
// ErrUnavailable, deadline expiry to ErrTimeout, and unusable payloads to
// ErrMalformed, so the engine can degrade uniformly.
func (c *HTTPClient) Adjudicate(ctx context.Context, req screening.AdjudicationRequest) (*screening.Judgment, error) {
	payload, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal adjudication request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/adjudicate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build adjudication request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("adjudication call: %w", sentinel.ErrTimeout)
		}
		return nil, fmt.Errorf("adjudication call: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adjudication status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var body adjudicateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode adjudication response: %w", sentinel.ErrMalformed)
	}
	return toJudgment(body)
}

func buildRequest(req screening.AdjudicationRequest) adjudicateRequest {
	signals := make([]strategySignal, len(req.StrategySignals))
	for i, s := range req.StrategySignals {
		signals[i] = strategySignal{
			Strategy: string(s.Strategy),
			Score:    s.Value,
			Variant:  s.MatchedVariant.Text,
			Field:    s.MatchedField,
		}
	}
	return adjudicateRequest{
		QuerySummary: querySummary{
			Name:        req.QuerySummary.Name,
			DateOfBirth: req.QuerySummary.DateOfBirth,
			Nationality: req.QuerySummary.Nationality,
			Address:     req.QuerySummary.Address,
		},
		CandidateRecord: buildCandidate(req.Candidate),
		StrategySignals: signals,
		ContextSignals: map[string]string{
			"dob":         string(req.ContextSignals.DOB),
			"nationality": string(req.ContextSignals.Nationality),
			"address":     string(req.ContextSignals.Address),
		},
	}
}

func buildCandidate(rec *watchlist.Record) candidateRecord {
	if rec == nil {
		return candidateRecord{}
	}
	return candidateRecord{
		ID:            rec.ID,
		PrimaryName:   rec.PrimaryName,
		Type:          rec.Type,
		Program:       rec.Program,
		Aliases:       rec.Aliases,
		DateOfBirth:   rec.DateOfBirth.String(),
		Nationalities: rec.Nationalities,
		Addresses:     rec.Addresses,
		Remarks:       rec.Remarks,
	}
}

func toJudgment(body adjudicateResponse) (*screening.Judgment, error) {
	if body.Confidence < 0 || body.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range: %w", body.Confidence, sentinel.ErrMalformed)
	}
	risk := screening.RiskLevel(body.RiskLevel)
	switch risk {
	case screening.RiskLow, screening.RiskMedium, screening.RiskHigh:
	default:
		return nil, fmt.Errorf("unknown risk level %q: %w", body.RiskLevel, sentinel.ErrMalformed)
	}
	return &screening.Judgment{
		Confidence: body.Confidence,
		RiskLevel:  risk,
		Rationale:  body.Rationale,
	}, nil
}
