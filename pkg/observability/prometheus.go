package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hyperview"

// PrometheusHooks implements every hook interface by updating Prometheus
// collectors. Create it with NewPrometheusHooks.
type PrometheusHooks struct {
	layoutRuns       *prometheus.CounterVec
	layoutDuration   *prometheus.HistogramVec
	layoutIterations *prometheus.CounterVec
	frames           prometheus.Counter
	frameDuration    prometheus.Histogram
	exports          *prometheus.CounterVec
	interactions     *prometheus.CounterVec
	dragDistance     prometheus.Histogram
	zoomScale        prometheus.Gauge
	cacheOps         *prometheus.CounterVec
	cacheBytes       prometheus.Counter
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if a collector with the same name is already registered, as
// prometheus.MustRegister does.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		layoutRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_runs_total",
			Help:      "Total number of layout runs",
		}, []string{"algorithm", "status"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algorithm"}),
		layoutIterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_iterations_total",
			Help:      "Total number of force simulation iterations",
		}, []string{"algorithm"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Total number of rendered frames",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Frame render duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of image exports",
		}, []string{"format", "status"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Total number of pointer interactions",
		}, []string{"kind"}),
		dragDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drag_distance_pixels",
			Help:      "Distance a node travelled during one drag",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		zoomScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zoom_scale_last",
			Help:      "Scale factor of the most recent zoom event",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Total number of bytes written to the cache",
		}),
	}

	reg.MustRegister(
		h.layoutRuns,
		h.layoutDuration,
		h.layoutIterations,
		h.frames,
		h.frameDuration,
		h.exports,
		h.interactions,
		h.dragDistance,
		h.zoomScale,
		h.cacheOps,
		h.cacheBytes,
	)
	return h
}

// Register installs h as the global layout, render, interaction and cache
// hooks.
func (h *PrometheusHooks) Register() {
	SetLayoutHooks(h)
	SetRenderHooks(h)
	SetInteractionHooks(h)
	SetCacheHooks(h)
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, algorithm string, iterations int, d time.Duration, err error) {
	h.layoutRuns.WithLabelValues(algorithm, status(err)).Inc()
	h.layoutDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	if iterations > 0 {
		h.layoutIterations.WithLabelValues(algorithm).Add(float64(iterations))
	}
}

func (h *PrometheusHooks) OnFrame(_, _ int, d time.Duration) {
	h.frames.Inc()
	h.frameDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnExport(format string, _ int, err error) {
	h.exports.WithLabelValues(format, status(err)).Inc()
}

func (h *PrometheusHooks) OnDragStart(string) {
	h.interactions.WithLabelValues("drag").Inc()
}

func (h *PrometheusHooks) OnDragEnd(_ string, distance float64) {
	h.dragDistance.Observe(distance)
}

func (h *PrometheusHooks) OnClick(string) {
	h.interactions.WithLabelValues("click").Inc()
}

func (h *PrometheusHooks) OnZoom(scale float64) {
	h.interactions.WithLabelValues("zoom").Inc()
	h.zoomScale.Set(scale)
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
