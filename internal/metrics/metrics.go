// Package metrics holds the Prometheus collectors recorded by vpcprov.
//
// The CLI is short-lived, so collectors are registered with a private
// [Registry] and written to a node-exporter textfile on exit instead of being
// served over HTTP.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every vpcprov collector.
var Registry = prometheus.NewRegistry()

var (
	// Provider API metrics
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpcprov",
			Subsystem: "vpc",
			Name:      "api_calls_total",
			Help:      "Total number of VPC API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vpcprov",
			Subsystem: "vpc",
			Name:      "api_latency_seconds",
			Help:      "Latency of VPC API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~25s
		},
		[]string{"operation"},
	)

	// Provisioning metrics
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpcprov",
			Subsystem: "provision",
			Name:      "submissions_total",
			Help:      "Total number of instance submissions by result",
		},
		[]string{"result"},
	)

	pollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpcprov",
			Subsystem: "provision",
			Name:      "status_checks_total",
			Help:      "Total number of instance status checks by classified status",
		},
		[]string{"status"},
	)

	provisionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vpcprov",
			Subsystem: "provision",
			Name:      "duration_seconds",
			Help:      "Duration from submission to terminal state in seconds",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 8), // 10s to ~21min
		},
		[]string{"result"},
	)

	// Form metrics
	dropdownFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpcprov",
			Subsystem: "workflow",
			Name:      "dropdown_failures_total",
			Help:      "Total number of dropdown lists degraded to the error entry",
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		apiCallsTotal,
		apiLatency,
		submissionsTotal,
		pollsTotal,
		provisionDuration,
		dropdownFailuresTotal,
	)
}

// RecordAPICall records a VPC API call.
func RecordAPICall(operation, result string, latency float64) {
	apiCallsTotal.WithLabelValues(operation, result).Inc()
	apiLatency.WithLabelValues(operation).Observe(latency)
}

// RecordSubmission records an instance submission result.
func RecordSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}

// RecordStatusCheck records one classified status check.
func RecordStatusCheck(status string) {
	pollsTotal.WithLabelValues(status).Inc()
}

// RecordProvisionDuration records the time a provisioning attempt took.
func RecordProvisionDuration(result string, seconds float64) {
	provisionDuration.WithLabelValues(result).Observe(seconds)
}

// RecordDropdownFailure records a dropdown degraded to the error entry.
func RecordDropdownFailure(operation string) {
	dropdownFailuresTotal.WithLabelValues(operation).Inc()
}

// WriteTextfile writes all collected metrics to path in the text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
