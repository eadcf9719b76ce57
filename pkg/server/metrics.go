package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	intents *prometheus.CounterVec
	blocked prometheus.Counter
	renders *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealform_intents_total",
				Help: "Intents applied to the store, by intent and entry kind",
			},
			[]string{"intent", "kind"},
		),
		blocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealform_blocked_submits_total",
			Help: "Create or update submits blocked by a missing meal name",
		}),
		renders: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mealform_render_duration_seconds",
				Help:    "Time spent rendering a page",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"view"},
		),
	}
	reg.MustRegister(m.intents, m.blocked, m.renders)
	return m
}
