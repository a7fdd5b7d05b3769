// Package metrics exports Prometheus metrics for the HTTP API and the
// upstream pipeline:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - upstream_request_total and upstream_request_duration_seconds per service
//   - result_cache_lookup_total and result_cache_entries
//   - translation_chunk_total per outcome
//
// Everything is registered with the default registry at init.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream service labels
const (
	ServiceSearch    = "search"
	ServiceDetail    = "detail"
	ServiceTranslate = "translate"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBuckets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets",
			Help: "Number of per-client rate limiter buckets",
		},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_total",
			Help: "Calls to upstream services by outcome",
		},
		[]string{"service", "outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream call latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_lookup_total",
			Help: "Result cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Records currently held in the result cache",
		},
	)

	TranslationChunks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_chunk_total",
			Help: "Translated chunks by outcome (translated, fallback, skipped)",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestTotals,
		HTTPRequestDuration,
		HTTPRequestInFlight,
		RateLimiterBuckets,
		UpstreamRequests,
		UpstreamDuration,
		CacheLookups,
		CacheEntries,
		TranslationChunks,
	)
}

// ObserveUpstream records one upstream call
func ObserveUpstream(service string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
	UpstreamDuration.WithLabelValues(service).Observe(seconds)
}
