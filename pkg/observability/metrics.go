package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

const namespace = "undangan"

// Metrics holds the collectors fed by flow lifecycle hooks.
type Metrics struct {
	registry *prometheus.Registry

	Transitions   *prometheus.CounterVec
	Advances      *prometheus.CounterVec
	Submissions   *prometheus.CounterVec
	Confirmations *prometheus.CounterVec
	Duration      prometheus.Histogram
	Reveals       *prometheus.CounterVec
}

// NewMetrics creates collectors on a private registry together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_transitions_total",
			Help:      "View state transitions by source and target state.",
		}, []string{"from", "to"}),
		Advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advances_total",
			Help:      "Explicit page advances by target section.",
		}, []string{"section"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rsvp_submissions_total",
			Help:      "Accepted RSVP submissions by attendance.",
		}, []string{"attending"}),
		Confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmations_total",
			Help:      "Resolved confirmations by result (generated or fallback).",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confirmation_duration_seconds",
			Help:      "Time spent waiting for the confirmation message.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}),
		Reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_reveals_total",
			Help:      "Sections revealed by scrolling into view.",
		}, []string{"section"}),
	}
	m.registry.MustRegister(
		m.Transitions, m.Advances, m.Submissions, m.Confirmations, m.Duration, m.Reveals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterLiveSessions exposes a gauge reading the number of open sessions.
func (m *Metrics) RegisterLiveSessions(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_sessions",
		Help:      "Sessions currently held in memory.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnAdvance: func(_ context.Context, e *domain.AdvanceEvent) {
			m.Advances.WithLabelValues(string(e.Target)).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.Submissions.WithLabelValues(string(e.Attending)).Inc()
		},
		OnOutcome: func(_ context.Context, e *domain.OutcomeEvent) {
			result := "fallback"
			if e.Succeeded {
				result = "generated"
			}
			m.Confirmations.WithLabelValues(result).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnReveal: func(_ context.Context, e *domain.RevealEvent) {
			m.Reveals.WithLabelValues(string(e.Section)).Inc()
		},
	}
}
