package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_total",
			Help: "Total number of login attempts by surface and outcome",
		},
		[]string{"surface", "status"}, // surface: "admin", "tenant"; status: "success", "failed"
	)

	// Tenant status transition counter
	TenantStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_tenant_status_transitions_total",
			Help: "Total number of tenant status transitions",
		},
		[]string{"new_status"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	// Activity log write counter
	ActivityLogCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_activity_log_writes_total",
			Help: "Total number of activity log writes",
		},
		[]string{"module", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "admin_active_sessions",
			Help: "Number of currently active console sessions",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_info",
			Help: "Information about the admin console service",
		},
		[]string{"version"},
	)

	// Tenants by status
	TenantsByStatusGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_tenants_by_status",
			Help: "Number of tenants per status",
		},
		[]string{"status"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(TenantStatusCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(ActivityLogCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(TenantsByStatusGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordLogin records a login attempt outcome
func RecordLogin(surface, status string) {
	LoginCounter.With(prometheus.Labels{"surface": surface, "status": status}).Inc()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTenantStatus records a tenant status transition
func RecordTenantStatus(newStatus string) {
	TenantStatusCounter.With(prometheus.Labels{"new_status": newStatus}).Inc()
}

// RecordActivityLog records an activity log write
func RecordActivityLog(module, status string) {
	ActivityLogCounter.With(prometheus.Labels{"module": module, "status": status}).Inc()
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// DecreaseActiveSessions decrements the active sessions gauge
func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}
