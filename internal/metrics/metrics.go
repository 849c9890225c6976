// Package metrics holds the prometheus collectors for redirect tracing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for TracesTotal.
const (
	OutcomeFinal      = "final"       // non-3xx response reached
	OutcomeLimit      = "limit"       // maxRedirects hops followed
	OutcomeNoLocation = "no_location" // 3xx without a usable Location
	OutcomeFailure    = "failure"     // transport error or cancellation
)

var (
	TracesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "purls",
		Name:      "traces_total",
		Help:      "Redirect traces by how they terminated.",
	}, []string{"outcome"})

	RedirectsPerTrace = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "purls",
		Name:      "redirects_per_trace",
		Help:      "Number of redirects followed per trace.",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})

	HopDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "purls",
		Name:      "hop_duration_seconds",
		Help:      "Latency of individual HEAD requests.",
		Buckets:   prometheus.DefBuckets,
	})

	LostParamsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "purls",
		Name:      "lost_params_total",
		Help:      "Query parameters dropped somewhere along a redirect chain.",
	})
)

// ObserveTrace records how a trace ended and how many redirects it followed.
func ObserveTrace(outcome string, redirects int) {
	TracesTotal.WithLabelValues(outcome).Inc()
	RedirectsPerTrace.Observe(float64(redirects))
}
