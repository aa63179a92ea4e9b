package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.RelayoutDecisionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "layout_relayout_decisions_total",
			Help: "Full vs partial relayout decisions",
		},
		[]string{"kind"},
	)

	r.LayoutPassDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "layout_pass_duration_seconds",
			Help:    "Layout pass duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
		[]string{"kind"},
	)
}
