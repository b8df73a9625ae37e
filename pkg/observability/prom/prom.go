// Package prom implements the observability hooks with Prometheus metrics.
//
// The CLI is short-lived, so metrics are not scraped over HTTP. Instead
// [Metrics.WriteTextfile] dumps them in the text exposition format for the
// node_exporter textfile collector or a CI artifact.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/coursemap/pkg/observability"
)

// Metrics records pipeline and cache events. It implements both
// [observability.PipelineHooks] and [observability.CacheHooks].
type Metrics struct {
	reg prometheus.Gatherer

	Validations      *prometheus.CounterVec
	ValidationIssues prometheus.Counter
	Layouts          *prometheus.CounterVec
	LayoutDuration   *prometheus.HistogramVec
	LayoutNodes      prometheus.Histogram
	Renders          *prometheus.CounterVec
	RenderDuration   prometheus.Histogram
	CacheRequests    *prometheus.CounterVec
	CacheBytes       *prometheus.CounterVec
}

// New registers the coursemap metrics on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,

		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursemap_validations_total",
			Help: "Total number of map validations, labelled by result.",
		}, []string{"result"}),

		ValidationIssues: f.NewCounter(prometheus.CounterOpts{
			Name: "coursemap_validation_issues_total",
			Help: "Total number of cycles and dangling references reported.",
		}),

		Layouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursemap_layouts_total",
			Help: "Total number of layout runs, labelled by mode and outcome.",
		}, []string{"mode", "status"}),

		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursemap_layout_duration_seconds",
			Help:    "Time spent computing layouts.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"mode"}),

		LayoutNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursemap_layout_nodes",
			Help:    "Number of nodes per laid-out map.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),

		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursemap_renders_total",
			Help: "Total number of render runs, labelled by outcome.",
		}, []string{"status"}),

		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursemap_render_duration_seconds",
			Help:    "Time spent rendering artifacts.",
			Buckets: prometheus.DefBuckets,
		}),

		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursemap_cache_requests_total",
			Help: "Cache lookups, labelled by key type and result.",
		}, []string{"type", "result"}),

		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursemap_cache_bytes_written_total",
			Help: "Bytes written to the cache, labelled by key type.",
		}, []string{"type"}),
	}
}

// Register installs m as the global pipeline and cache hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) OnValidate(_ context.Context, _ int, issues int, _ time.Duration) {
	result := "valid"
	if issues > 0 {
		result = "invalid"
	}
	m.Validations.WithLabelValues(result).Inc()
	m.ValidationIssues.Add(float64(issues))
}

func (m *Metrics) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	m.LayoutNodes.Observe(float64(nodeCount))
}

func (m *Metrics) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	m.Layouts.WithLabelValues(mode, status(err)).Inc()
	m.LayoutDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Metrics) OnLayoutSkipped(_ context.Context, mode string) {
	m.Layouts.WithLabelValues(mode, "skipped").Inc()
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.Renders.WithLabelValues(status(err)).Inc()
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
