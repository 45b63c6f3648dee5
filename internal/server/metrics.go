package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
)

const namespace = "strata"

// =============================================================================
// Prometheus Metrics
// =============================================================================

// Metrics implements the observability hooks with prometheus collectors on
// a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// layoutsTotal counts engine runs.
	// Labels: status (ok, error)
	layoutsTotal *prometheus.CounterVec

	layoutDuration prometheus.Histogram
	layoutVertices prometheus.Histogram
	layoutLayers   prometheus.Histogram
	crossings      prometheus.Histogram
	reversedLinks  prometheus.Counter

	// rendersTotal counts render runs.
	// Labels: status (ok, error)
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram

	// cacheOps counts cache lookups and writes.
	// Labels: key_type (layout, artifact), op (hit, miss, set)
	cacheOps *prometheus.CounterVec

	// cacheBytes counts bytes written to the cache.
	// Labels: key_type
	cacheBytes *prometheus.CounterVec

	// requestsTotal counts served requests.
	// Labels: method, route, status
	requestsTotal *prometheus.CounterVec

	// requestDuration measures request latency.
	// Labels: method, route
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a new registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		layoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "runs_total",
			Help:      "Total engine runs by outcome",
		}, []string{"status"}),
		layoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Engine run time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		layoutVertices: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "vertices",
			Help:      "Vertices per laid-out graph",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		layoutLayers: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "layers",
			Help:      "Layers per laid-out graph",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		crossings: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "crossings",
			Help:      "Link crossings in the final drawing",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}),
		reversedLinks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "reversed_links_total",
			Help:      "Links reversed to break cycles",
		}),

		rendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "runs_total",
			Help:      "Total render runs by outcome",
		}, []string{"status"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Render time in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache lookups and writes",
		}, []string{"key_type", "op"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"key_type"}),

		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m as the process-wide layout, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetLayoutHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) OnLayoutStart(context.Context, int, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, st layout.Stats, d time.Duration, err error) {
	m.layoutsTotal.WithLabelValues(outcome(err)).Inc()
	m.layoutDuration.Observe(d.Seconds())
	if err != nil {
		return
	}
	m.layoutVertices.Observe(float64(st.Vertices))
	m.layoutLayers.Observe(float64(st.Layers))
	m.crossings.Observe(float64(st.Crossings))
	m.reversedLinks.Add(float64(st.ReversedLinks))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.rendersTotal.WithLabelValues(outcome(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.LayoutHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
