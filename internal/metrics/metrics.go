// Package metrics exports Prometheus collectors for the observability hooks.
//
// A [Collector] implements every hook interface from
// [github.com/matzehuels/fpgroups/pkg/observability] on its own registry, so
// tests can create independent collectors. The API server installs one at
// startup and serves it on /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/fpgroups/pkg/observability"
)

const namespace = "fpgroups"

// Collector records hook events as Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	enumerations *prometheus.CounterVec
	enumDuration *prometheus.HistogramVec
	enumSize     *prometheus.HistogramVec
	actionsFound *prometheus.CounterVec
	inflight     *prometheus.GaugeVec

	cacheLookups *prometheus.CounterVec
	cacheBytes   prometheus.Counter

	requests    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
}

var (
	_ observability.EnumerationHooks = (*Collector)(nil)
	_ observability.CacheHooks       = (*Collector)(nil)
	_ observability.HTTPHooks        = (*Collector)(nil)
)

// New creates a collector with its own registry. The registry also carries
// the Go runtime and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		enumerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enumerations_total",
				Help:      "Finished analyses by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		enumDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "enumeration_duration_seconds",
				Help:      "Wall time of analyses by kind.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"kind"},
		),
		enumSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "enumeration_size",
				Help:      "Cosets, actions or generators produced by successful analyses.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"kind"},
		),
		actionsFound: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_found_total",
				Help:      "Transitive actions found by subgroup searches, by degree.",
			},
			[]string{"degree"},
		),
		inflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "enumerations_in_flight",
				Help:      "Analyses currently running.",
			},
			[]string{"kind"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by key type and result.",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_written_bytes_total",
				Help:      "Bytes written to the cache.",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP responses by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		reqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	c.registry.MustRegister(
		c.enumerations, c.enumDuration, c.enumSize, c.actionsFound, c.inflight,
		c.cacheLookups, c.cacheBytes,
		c.requests, c.reqDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Install registers c as the process-wide enumeration, cache and HTTP hooks.
func (c *Collector) Install() {
	observability.SetEnumerationHooks(c)
	observability.SetCacheHooks(c)
	observability.SetHTTPHooks(c)
}

// Registry returns the registry holding c's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves c's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) OnEnumerationStart(_ context.Context, kind string) {
	c.inflight.WithLabelValues(kind).Inc()
}

func (c *Collector) OnEnumerationComplete(_ context.Context, kind string, size int, duration time.Duration, err error) {
	c.inflight.WithLabelValues(kind).Dec()
	c.enumDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		c.enumerations.WithLabelValues(kind, "error").Inc()
		return
	}
	c.enumerations.WithLabelValues(kind, "ok").Inc()
	c.enumSize.WithLabelValues(kind).Observe(float64(size))
}

func (c *Collector) OnActionFound(_ context.Context, size int) {
	c.actionsFound.WithLabelValues(strconv.Itoa(size)).Inc()
}

func (c *Collector) OnCacheHit(_ context.Context, keyType string) {
	c.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (c *Collector) OnCacheMiss(_ context.Context, keyType string) {
	c.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (c *Collector) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(float64(size))
}

func (c *Collector) OnRequest(context.Context, string, string) {}

func (c *Collector) OnResponse(_ context.Context, method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.reqDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
