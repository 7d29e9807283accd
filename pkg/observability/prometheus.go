package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements RenderHooks and CacheHooks with Prometheus
// collectors on a private registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	artifactBytes  *prometheus.GaugeVec
	viewerLaunches *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them on a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recoveryflow_renders_total",
			Help: "Diagram renders by format and outcome.",
		}, []string{"format", "status"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recoveryflow_render_duration_seconds",
			Help:    "Time spent laying out and rasterizing a diagram.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		artifactBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "recoveryflow_artifact_bytes",
			Help: "Size of the last rendered artifact.",
		}, []string{"format"}),
		viewerLaunches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recoveryflow_viewer_launches_total",
			Help: "Viewer launch attempts by outcome.",
		}, []string{"status"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recoveryflow_cache_events_total",
			Help: "Artifact cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
	}
	h.registry.MustRegister(h.renders, h.renderDuration, h.artifactBytes, h.viewerLaunches, h.cacheEvents)
	return h
}

// WriteTextfile writes the current metrics in text exposition format, suitable
// for the node_exporter textfile collector.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.renders.WithLabelValues(format, status(err)).Inc()
	if err != nil {
		return
	}
	h.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	h.artifactBytes.WithLabelValues(format).Set(float64(size))
}

func (h *PrometheusHooks) OnViewerLaunch(_ context.Context, err error) {
	h.viewerLaunches.WithLabelValues(status(err)).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ RenderHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
)
