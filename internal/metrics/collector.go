package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector records backend API calls and tool executions.
type Collector struct {
	// Backend API metrics
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiFailuresTotal   *prometheus.CounterVec

	// Tool metrics
	toolExecutionsTotal   *prometheus.CounterVec
	toolExecutionDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector creates a collector with all metrics registered under the
// given namespace on the default Prometheus registry.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of backend API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Backend API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.apiFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_failures_total",
			Help:      "Total number of failed backend API calls by error code",
		},
		[]string{"path", "code"},
	)

	c.toolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_executions_total",
			Help:      "Total number of tool executions",
		},
		[]string{"tool", "outcome"},
	)

	c.toolExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_execution_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// RecordAPIRequest records one backend API call. A status of 0 means the
// transport failed before a status was received.
func (c *Collector) RecordAPIRequest(method, path string, status int, duration time.Duration) {
	c.apiRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	c.apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAPIFailure records a failed backend API call by error code.
func (c *Collector) RecordAPIFailure(path, code string) {
	c.apiFailuresTotal.WithLabelValues(path, code).Inc()
}

// RecordToolExecution records one tool execution with its outcome
// ("success" or "error").
func (c *Collector) RecordToolExecution(tool, outcome string, duration time.Duration) {
	c.toolExecutionsTotal.WithLabelValues(tool, outcome).Inc()
	c.toolExecutionDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// statusClass groups HTTP status codes into low-cardinality classes.
func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
