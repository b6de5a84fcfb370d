package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the screening engine. A nil
// *Metrics is valid and records nothing, so tests and tools can run without
// a registry.
type Metrics struct {
	ScreenDuration      prometheus.Histogram
	StrategyHits        *prometheus.CounterVec
	AdjudicationOutcome *prometheus.CounterVec
	ResultsSurfaced     prometheus.Counter
	ResultsByRisk       *prometheus.CounterVec
	PartialResponses    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ScreenDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_screen_duration_seconds",
			Help:    "End-to-end latency of screening requests",
			Buckets: prometheus.DefBuckets,
		}),
		StrategyHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_strategy_hits_total",
			Help: "Matcher strategy firings by strategy",
		}, []string{"strategy"}),
		AdjudicationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_adjudication_outcomes_total",
			Help: "LLM adjudication call outcomes",
		}, []string{"outcome"}),
		ResultsSurfaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_results_surfaced_total",
			Help: "Total matches returned to callers",
		}),
		ResultsByRisk: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_results_by_risk_total",
			Help: "Returned matches by risk band",
		}, []string{"risk"}),
		PartialResponses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_partial_responses_total",
			Help: "Responses returned before adjudication completed",
		}),
	}
}

func (m *Metrics) ObserveScreenDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ScreenDuration.Observe(d.Seconds())
}

func (m *Metrics) IncStrategyHit(strategy string) {
	if m == nil {
		return
	}
	m.StrategyHits.WithLabelValues(strategy).Inc()
}

func (m *Metrics) IncAdjudication(outcome string) {
	if m == nil {
		return
	}
	m.AdjudicationOutcome.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddResults(byRisk map[string]int) {
	if m == nil {
		return
	}
	for risk, n := range byRisk {
		m.ResultsSurfaced.Add(float64(n))
		m.ResultsByRisk.WithLabelValues(risk).Add(float64(n))
	}
}

func (m *Metrics) IncPartialResponse() {
	if m == nil {
		return
	}
	m.PartialResponses.Inc()
}
