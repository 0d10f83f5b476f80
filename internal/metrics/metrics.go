package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FilterRuns     *prometheus.CounterVec
	FilterSeconds  prometheus.Histogram
	VisiblePoints  prometheus.Gauge
	PointSetSize   prometheus.Gauge
	Toggles        *prometheus.CounterVec
	RenderErrors   prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FilterRuns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "heatmap_filter_runs_total",
			Help: "Total number of polygon filter runs.",
		}, []string{"status"}),
		FilterSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "heatmap_filter_duration_seconds",
			Help:    "Duration of polygon filter runs.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		VisiblePoints: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "heatmap_visible_points",
			Help: "Number of points in the last rendered heatmap layer.",
		}),
		PointSetSize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "heatmap_point_set_size",
			Help: "Number of points loaded into the heatmap point set.",
		}),
		Toggles: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "heatmap_toggles_total",
			Help: "Total number of layer toggles.",
		}, []string{"flag", "active"}),
		RenderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "heatmap_render_errors_total",
			Help: "Total number of errors returned by the layer renderer.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatmap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the heatmap API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
