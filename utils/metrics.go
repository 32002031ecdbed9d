package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Reminder Metrics
	ReminderOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_operations_total",
			Help: "Total number of reminder operations",
		},
		[]string{"operation"}, // create, update, complete, snooze, delete
	)

	RecurrenceAdvancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recurrence_advances_total",
			Help: "Total number of recurring reminders rolled forward",
		},
		[]string{"type"}, // daily, weekly, custom
	)

	// Push Metrics
	PushMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_messages_total",
			Help: "Total number of push messages published",
		},
		[]string{"action"},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh/phone
	)

	// Cache Metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations by hit/miss",
		},
		[]string{"cache", "result"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type and reason",
		},
		[]string{"type", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackReminderOperation increments the reminder operation counter
func TrackReminderOperation(operation string) {
	ReminderOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackRecurrenceAdvance records a recurring reminder being rolled forward
func TrackRecurrenceAdvance(ruleType string) {
	RecurrenceAdvancesTotal.WithLabelValues(ruleType).Inc()
}

// TrackPushMessage records a push message publish by action
func TrackPushMessage(action string) {
	PushMessagesTotal.WithLabelValues(action).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackCacheOperation records a cache hit or miss
func TrackCacheOperation(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperations.WithLabelValues(cache, result).Inc()
}

// TrackError increments the error counter by type and reason
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
