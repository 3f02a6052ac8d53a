// Package metrics provides Prometheus metrics for the dashboard server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatasetLoadsTotal tracks dataset loads by status
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Total number of dataset loads by status",
		},
		[]string{"status"},
	)

	// DatasetLoadDuration tracks how long a load, clean and merge cycle takes
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "njdg",
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Duration of dataset load cycles in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// DatasetRows tracks the row count of each cached table
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "njdg",
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Number of rows in each cached table",
		},
		[]string{"table"},
	)

	// CacheRequestsTotal tracks dataset cache lookups by result
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Total number of dataset cache lookups by result",
		},
		[]string{"result"},
	)

	// LoginAttemptsTotal tracks login attempts by role and status
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by role and status",
		},
		[]string{"role", "status"},
	)

	// AutoLoginDecisionsTotal tracks auto-login gate decisions
	AutoLoginDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "auth",
			Name:      "auto_login_total",
			Help:      "Total number of auto-login decisions by outcome",
		},
		[]string{"outcome"},
	)

	// StoreWritesTotal tracks document store saves
	StoreWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Total number of document store writes by status",
		},
		[]string{"document", "status"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "njdg",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "njdg",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordDatasetLoad records one load cycle and, on success, the table sizes
func RecordDatasetLoad(ok bool, durationSeconds float64, rows map[string]int) {
	DatasetLoadsTotal.WithLabelValues(status(ok)).Inc()
	DatasetLoadDuration.Observe(durationSeconds)
	for table, n := range rows {
		DatasetRows.WithLabelValues(table).Set(float64(n))
	}
}

// RecordCacheLookup records a dataset cache hit or miss
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordLogin records a login attempt
func RecordLogin(role string, ok bool) {
	LoginAttemptsTotal.WithLabelValues(role, status(ok)).Inc()
}

// RecordAutoLogin records an auto-login gate decision
func RecordAutoLogin(accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	AutoLoginDecisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordStoreWrite records a document store save
func RecordStoreWrite(document string, ok bool) {
	StoreWritesTotal.WithLabelValues(document, status(ok)).Inc()
}

// RecordHTTPRequest records an inbound HTTP request
func RecordHTTPRequest(method, route, statusCode string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
