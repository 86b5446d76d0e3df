package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReadingsCreatedTotal counts readings created through the API.
	ReadingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bp_readings_created_total",
			Help: "Total number of readings created via the API",
		},
	)

	// ImportRowsTotal counts bulk-import rows by outcome (imported, skipped).
	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bp_import_rows_total",
			Help: "Total number of bulk-import rows by outcome",
		},
		[]string{"status"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ReadingsCreatedTotal, ImportRowsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/readings/123 -> /api/readings/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncReadingsCreated increments the created-readings counter (call when POST /api/readings succeeds).
func IncReadingsCreated() {
	ReadingsCreatedTotal.Inc()
}

// AddImportRows records the outcome of a bulk-import run.
func AddImportRows(imported, skipped int) {
	ImportRowsTotal.WithLabelValues("imported").Add(float64(imported))
	ImportRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}
