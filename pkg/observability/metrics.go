package observability

import (
	"context"
	"time"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "seqline"

// Metrics holds the collectors fed by the engine.
type Metrics struct {
	lifelineEvents *prometheus.CounterVec
	messages       *prometheus.CounterVec
	nestingDepth   prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lifelineEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifeline_events_total",
				Help:      "Total number of lifeline state changes by event type.",
			},
			[]string{"type"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Total number of interpreted messages by kind.",
			},
			[]string{"kind"},
		),
		nestingDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "activation_side_level",
			Help:      "Side level of nested activations when they are spawned.",
			Buckets:   []float64{1, 2, 3, 5, 8},
		}),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of scenario renders by outcome.",
			},
			[]string{"outcome"},
		),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of scenario renders.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{
		m.lifelineEvents, m.messages, m.nestingDepth, m.renders, m.renderDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLifeline: func(_ context.Context, e *domain.LifelineEvent) {
			m.lifelineEvents.WithLabelValues(string(e.Type)).Inc()
			if e.Type == domain.EventSpawn {
				m.nestingDepth.Observe(float64(e.SideLevel))
			}
		},
		OnMessage: func(_ context.Context, e *domain.MessageEvent) {
			kind := e.Message.Kind
			if kind == "" {
				kind = domain.MessageCall
			}
			m.messages.WithLabelValues(string(kind)).Inc()
		},
	}
}

// ObserveRender records the outcome of one render.
func (m *Metrics) ObserveRender(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.renders.WithLabelValues(outcome).Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}
