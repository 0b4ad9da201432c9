package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "yarf"

// Collector records request lifecycle metrics into its own registry.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	uploads  prometheus.Counter
	sessions *prometheus.CounterVec
	swept    prometheus.Counter
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	runtime   bool
	buckets   []float64
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithRuntimeMetrics also registers Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(o *options) {
		o.runtime = true
	}
}

// WithBuckets sets the request duration histogram buckets in seconds.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

// New creates a collector with a private registry.
func New(opts ...Option) *Collector {
	o := options{namespace: DefaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "requests_total",
			Help:      "Requests completed, by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "request_duration_seconds",
			Help:      "Time from request receipt to response completion.",
			Buckets:   o.buckets,
		}, []string{"method"}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "uploaded_files_total",
			Help:      "Files written to temporary storage from multipart bodies.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "session_store_operations_total",
			Help:      "Session store round trips, by operation and result.",
		}, []string{"op", "result"}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "swept_uploads_total",
			Help:      "Stale temporary upload files removed by the janitor.",
		}),
	}

	c.registry.MustRegister(c.requests, c.duration, c.uploads, c.sessions, c.swept)
	if o.runtime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return c
}

// ObserveRequest records a completed request. All observation methods are
// no-ops on a nil Collector.
func (c *Collector) ObserveRequest(method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// AddUploads records n uploaded files.
func (c *Collector) AddUploads(n int) {
	if c == nil {
		return
	}
	if n > 0 {
		c.uploads.Add(float64(n))
	}
}

// ObserveSession records one session store operation.
func (c *Collector) ObserveSession(op string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.sessions.WithLabelValues(op, result).Inc()
}

// AddSwept records n files removed by the janitor.
func (c *Collector) AddSwept(n int) {
	if c == nil {
		return
	}
	if n > 0 {
		c.swept.Add(float64(n))
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
