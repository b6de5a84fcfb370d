package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vigil/internal/screening"
	"vigil/internal/watchlist"
)

type stubService struct {
	screenResult *screening.ScreenResult
	screenErr    error
	stats        screening.StatsReport
	statsErr     error
	healthErr    error

	lastRequest screening.ScreenRequest
}

func (s *stubService) Screen(_ context.Context, req screening.ScreenRequest) (*screening.ScreenResult, error) {
	s.lastRequest = req
	return s.screenResult, s.screenErr
}

func (s *stubService) Stats(context.Context) (screening.StatsReport, error) {
	return s.stats, s.statsErr
}

func (s *stubService) Health(context.Context) error {
	return s.healthErr
}

type HandlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func newTestRouter(service *stubService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(service, logger).Register(r)
	return r
}

func (s *HandlerSuite) TestHandleScreen() {
	service := &stubService{
		screenResult: &screening.ScreenResult{
			Query:           screening.Query{RawText: "Vladimir Putin, Russia"},
			SnapshotVersion: "snap-1",
			Results: []screening.MatchResult{{
				RecordID:    "1001",
				PrimaryName: "Vladimir PUTIN",
				Program:     "UKRAINE-EO13661",
				FinalScore:  0.97,
				RiskLevel:   screening.RiskHigh,
				Explanation: []string{"exact match on primary name"},
			}},
		},
	}
	router := newTestRouter(service)

	body, err := json.Marshal(map[string]any{
		"query":       "Vladimir Putin, Russia",
		"dob":         "1952-10-07",
		"max_results": 5,
	})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/screen", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("1952-10-07", service.lastRequest.DOBHint)
	s.Equal(5, service.lastRequest.MaxResults)

	var resp ScreenResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("snap-1", resp.SnapshotVersion)
	s.Equal(1, resp.TotalMatches)
	require.Len(s.T(), resp.Results, 1)
	s.Equal("1001", resp.Results[0].RecordID)
	s.Equal("HIGH", resp.Results[0].RiskLevel)
	s.InDelta(0.97, resp.Results[0].Score, 0.001)
}

func (s *HandlerSuite) TestHandleScreenValidation() {
	router := newTestRouter(&stubService{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing query", `{}`},
		{"blank query", `{"query":"   "}`},
		{"negative max results", `{"query":"x","max_results":-1}`},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodPost, "/screen", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *HandlerSuite) TestHandleScreenServiceError() {
	service := &stubService{screenErr: screening.ErrStoreUnavailable}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/screen", bytes.NewReader([]byte(`{"query":"John Smith"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *HandlerSuite) TestHandleHealth() {
	s.Run("healthy", func() {
		router := newTestRouter(&stubService{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unhealthy", func() {
		router := newTestRouter(&stubService{healthErr: errors.New("no snapshot loaded")})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})
}

func (s *HandlerSuite) TestHandleStats() {
	service := &stubService{stats: screening.StatsReport{
		SnapshotVersion: "snap-9",
		Watchlist: watchlist.Stats{
			TotalRecords: 11,
			Individuals:  7,
			Entities:     4,
			Programs:     3,
		},
	}}
	router := newTestRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	s.Equal(http.StatusOK, rec.Code)
	var resp StatsResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("snap-9", resp.SnapshotVersion)
	s.Equal(11, resp.TotalRecords)
	s.Equal(7, resp.Individuals)
}
