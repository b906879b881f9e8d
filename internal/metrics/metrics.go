// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics records HTTP request metrics in a dedicated Prometheus
// registry and exposes them in the text exposition format.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedRoute labels requests that matched no registered route.
const UnmatchedRoute = "unmatched"

// Recorder owns the request metrics of one server.
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	size     *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// New registers the request metrics, plus the Go runtime and process
// collectors, in a fresh registry. namespace prefixes every metric name;
// characters Prometheus does not allow are replaced by underscores.
func New(namespace string) *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	namespace = sanitize(namespace)

	return &Recorder{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time taken to serve HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		size: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "Size of HTTP response bodies",
				Buckets:   prometheus.ExponentialBuckets(128, 4, 8),
			},
			[]string{"method", "route"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
	}
}

// Started marks a request as in flight.
func (r *Recorder) Started() {
	r.inFlight.Inc()
}

// Observe records one finished request. An empty route is recorded as
// [UnmatchedRoute] to keep label cardinality bounded.
func (r *Recorder) Observe(method, route string, status int, d time.Duration, size int) {
	if route == "" {
		route = UnmatchedRoute
	}

	r.inFlight.Dec()
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route).Observe(d.Seconds())
	r.size.WithLabelValues(method, route).Observe(float64(size))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func sanitize(namespace string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			return c
		default:
			return '_'
		}
	}, namespace)
}
