// Package prom implements the observability hooks with Prometheus
// collectors.
//
// salesmap is a one-shot CLI, so nothing is scraped. Instead the collected
// metrics are written once at exit in the node_exporter textfile format
// (see [Metrics.WriteFile]), where a textfile collector can pick them up.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/salesmap/pkg/observability"
)

// Metrics records pipeline, cache and HTTP events on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	leaves        prometheus.Gauge
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  prometheus.Histogram
	httpErrors    prometheus.Counter
}

// New creates a Metrics with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		stageTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesmap_stage_total",
				Help: "Pipeline stages run, by stage and outcome",
			},
			[]string{"stage", "status"},
		),
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesmap_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"stage"},
		),
		leaves: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "salesmap_dataset_leaves",
				Help: "Leaf records in the most recently loaded dataset",
			},
		),
		cacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesmap_cache_events_total",
				Help: "Cache lookups and writes, by key type and event",
			},
			[]string{"key_type", "event"},
		),
		cacheBytes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "salesmap_cache_written_bytes_total",
				Help: "Bytes written to the cache",
			},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesmap_http_responses_total",
				Help: "HTTP responses received, by host and status code",
			},
			[]string{"host", "code"},
		),
		httpDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "salesmap_http_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpErrors: f.NewCounter(
			prometheus.CounterOpts{
				Name: "salesmap_http_errors_total",
				Help: "HTTP requests that failed before a response arrived",
			},
		),
	}
}

// Register installs m as the pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry exposes the underlying registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteFile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) finish(stage string, d time.Duration, err error) {
	m.stageTotal.WithLabelValues(stage, status(err)).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, leafCount int, d time.Duration, err error) {
	if err == nil {
		m.leaves.Set(float64(leafCount))
	}
	m.finish("load", d, err)
}

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _ string, d time.Duration, err error) {
	m.finish("layout", d, err)
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.finish("render", d, err)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	m.httpRequests.WithLabelValues(host, strconv.Itoa(code)).Inc()
	m.httpDuration.Observe(d.Seconds())
}

func (m *Metrics) OnError(context.Context, string, string, string, error) {
	m.httpErrors.Inc()
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
