// Package httptransport assembles the public HTTP surface: request-scoped
// middleware, the screening endpoints, and the metrics endpoint. It stays
// thin; all behavior lives in the domain services.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	screeninghandler "vigil/internal/screening/handler"
	"vigil/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// NewRouter wires all public endpoints.
func NewRouter(screening *screeninghandler.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestScope)
	r.Use(accessLog(logger))

	screening.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// requestScope stamps each request with an ID and a consistent time. A
// caller-supplied X-Request-ID is honored so IDs correlate across services.
func requestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.InfoContext(r.Context(), "request handled",
				"request_id", requestcontext.RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
