package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "result"}, // hit/miss
	)

	// Focus Metrics
	FocusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_transitions_total",
			Help: "Total number of focus session state transitions",
		},
		[]string{"transition"}, // start, pause, resume, complete, end_early, cancel
	)

	StatsRecalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_stats_recalculations_total",
			Help: "Total number of focus statistics recomputes",
		},
		[]string{"result"}, // success/failure
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh/2fa
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of user registrations",
		},
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Total number of active device sessions",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and reason",
		},
		[]string{"component", "reason"},
	)
)

// Helper functions for tracking specific metrics

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackCacheOperation records a cache hit or miss
func TrackCacheOperation(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperationsTotal.WithLabelValues(cache, result).Inc()
}

// TrackFocusTransition increments the focus transition counter
func TrackFocusTransition(transition string) {
	FocusTransitionsTotal.WithLabelValues(transition).Inc()
}

// TrackStatsRecalculation records the outcome of a stats recompute
func TrackStatsRecalculation(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	StatsRecalculationsTotal.WithLabelValues(result).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackRegistration increments the registration counter
func TrackRegistration() {
	RegistrationsTotal.Inc()
}

// UpdateActiveSessions sets the current number of active device sessions
func UpdateActiveSessions(count float64) {
	ActiveSessions.Set(count)
}

// TrackError increments the error counter by component and reason
func TrackError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}
