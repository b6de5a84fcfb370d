package handler

import (
	"strings"

	"vigil/internal/screening"
	"vigil/pkg/domainerrors"
)

const (
	maxQueryLength   = 512
	maxHintLength    = 128
	maxResultsCeil   = 100
	defaultMaxResult = 20
)

// ScreenRequest is the HTTP request body for POST /screen.
type ScreenRequest struct {
	Query       string `json:"query"`
	DOB         string `json:"dob,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Address     string `json:"address,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ScreenRequest) Validate() error {
	if r == nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is required")
	}

	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return domainerrors.New(domainerrors.CodeValidation, "query is required")
	}
	if len(r.Query) > maxQueryLength {
		return domainerrors.New(domainerrors.CodeValidation, "query must be at most 512 characters")
	}

	for field, v := range map[string]string{
		"dob":         r.DOB,
		"nationality": r.Nationality,
		"address":     r.Address,
	} {
		if len(v) > maxHintLength {
			return domainerrors.New(domainerrors.CodeValidation, field+" must be at most 128 characters")
		}
	}

	if r.MaxResults < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "max_results must not be negative")
	}
	if r.MaxResults == 0 {
		r.MaxResults = defaultMaxResult
	}
	if r.MaxResults > maxResultsCeil {
		r.MaxResults = maxResultsCeil
	}

	return nil
}

// Domain converts the validated body into the engine request.
func (r *ScreenRequest) Domain() screening.ScreenRequest {
	return screening.ScreenRequest{
		QueryText:       r.Query,
		DOBHint:         strings.TrimSpace(r.DOB),
		NationalityHint: strings.TrimSpace(r.Nationality),
		AddressHint:     strings.TrimSpace(r.Address),
		MaxResults:      r.MaxResults,
	}
}
