package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initViewMetrics() {
	r.CullingVisibleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "view_culling_visible_nodes",
			Help: "Nodes inside the frustum after the last culling pass",
		},
	)

	r.CullingCulledNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "view_culling_culled_nodes",
			Help: "Nodes outside the frustum after the last culling pass",
		},
	)

	r.LodBandNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "view_lod_band_nodes",
			Help: "Nodes per detail band after the last LOD pass",
		},
		[]string{"band"},
	)
}
