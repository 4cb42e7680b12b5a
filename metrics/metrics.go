// Package metrics exposes Prometheus metrics for provisioning requests and
// panel API calls, and the HTTP server that serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "panel_provisioning"

var (
	// Registry holds every metric of this package plus the Go and process collectors.
	Registry = prometheus.NewRegistry()

	provisionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orchestrator",
			Name:      "provision_total",
			Help:      "Total number of provisioning requests by target and result",
		},
		[]string{"target", "result"},
	)

	provisionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orchestrator",
			Name:      "provision_duration_seconds",
			Help:      "Duration of provisioning requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"target"},
	)

	panelAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "panel",
			Name:      "api_calls_total",
			Help:      "Total number of panel application API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	panelAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "panel",
			Name:      "api_latency_seconds",
			Help:      "Latency of panel application API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		provisionTotal,
		provisionDuration,
		panelAPICallsTotal,
		panelAPILatency,
	)
}

// RecordProvision records the outcome of one provisioning request.
func RecordProvision(target, result string, seconds float64) {
	provisionTotal.WithLabelValues(target, result).Inc()
	provisionDuration.WithLabelValues(target).Observe(seconds)
}

// RecordPanelCall records one panel application API call.
func RecordPanelCall(operation, result string, seconds float64) {
	panelAPICallsTotal.WithLabelValues(operation, result).Inc()
	panelAPILatency.WithLabelValues(operation).Observe(seconds)
}
