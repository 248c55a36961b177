package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records analysis and mitigation activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Completed analyses by result source ("llm" or "fallback")
	Analyses *prometheus.CounterVec

	// Fallbacks taken by operation ("analysis" or "mitigation")
	Fallbacks *prometheus.CounterVec

	// LLM round trip latency by operation
	LLMLatency *prometheus.HistogramVec

	// Projected scores returned by the mitigation simulator
	ProjectedScore prometheus.Histogram
}

// New creates the metrics and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cipher_analyses_total",
			Help: "Total completed dossier analyses by result source",
		}, []string{"source"}),

		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cipher_fallbacks_total",
			Help: "Total fallbacks to deterministic results by operation",
		}, []string{"operation"}),

		LLMLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cipher_llm_request_duration_seconds",
			Help:    "Duration of LLM requests by operation",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"operation"}),

		ProjectedScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cipher_mitigation_projected_score",
			Help:    "Projected risk scores returned by the mitigation simulator",
			Buckets: []float64{15, 25, 40, 55, 70, 85, 100},
		}),
	}
}

// IncrementAnalysis records a completed analysis
func (m *Metrics) IncrementAnalysis(source string) {
	if m != nil {
		m.Analyses.WithLabelValues(source).Inc()
	}
}

// IncrementFallback records a fallback to the deterministic path
func (m *Metrics) IncrementFallback(operation string) {
	if m != nil {
		m.Fallbacks.WithLabelValues(operation).Inc()
	}
}

// ObserveLLMLatency records the duration of an LLM request
func (m *Metrics) ObserveLLMLatency(operation string, d time.Duration) {
	if m != nil {
		m.LLMLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveProjectedScore records a simulated score
func (m *Metrics) ObserveProjectedScore(score int) {
	if m != nil {
		m.ProjectedScore.Observe(float64(score))
	}
}
