package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_ledger_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	documentOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_ledger_document_operations_total",
			Help: "Total number of order and invoice operations",
		},
		[]string{"kind", "operation", "status"},
	)

	cardOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_ledger_card_operations_total",
			Help: "Total number of gift card operations",
		},
		[]string{"operation", "status"},
	)
)

// PrometheusMiddleware collects per-request counters and latency
// histograms.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordDocumentOperation records an order or invoice mutation outcome.
func RecordDocumentOperation(kind, operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	documentOperations.WithLabelValues(kind, operation, status).Inc()
}

// RecordCardOperation records a gift card operation outcome.
func RecordCardOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	cardOperations.WithLabelValues(operation, status).Inc()
}
