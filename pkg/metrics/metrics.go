package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Database query latency (seconds)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of queries slower than the configured threshold",
		},
	)

	ReviewCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_events_total",
			Help: "Review lifecycle events",
		},
		[]string{"event"}, // submitted, approved, deleted, duplicate
	)

	QuoteEstimateCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_estimates_total",
			Help: "Total number of quote estimates computed over HTTP",
		},
	)

	QuoteRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Total number of quote requests submitted",
		},
		[]string{"service_type"},
	)

	EventPublishCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"routing_key", "status"}, // status: ok, failed, rejected
	)

	NotificationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification e-mails processed by the worker",
		},
		[]string{"routing_key", "status"}, // status: sent, duplicate, failed
	)
)

// RecordHTTPRequestDuration records HTTP latency
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records DB latency
func RecordDBQueryDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncrementSlowQuery counts a slow query
func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}

// IncrementReview counts a review lifecycle event
func IncrementReview(event string) {
	ReviewCount.WithLabelValues(event).Inc()
}

// IncrementQuoteEstimate counts an estimator call
func IncrementQuoteEstimate() {
	QuoteEstimateCount.Inc()
}

// IncrementQuoteRequest counts a stored quote request
func IncrementQuoteRequest(serviceType string) {
	QuoteRequestCount.WithLabelValues(serviceType).Inc()
}

// IncrementEventPublish counts a publish attempt
func IncrementEventPublish(routingKey, status string) {
	EventPublishCount.WithLabelValues(routingKey, status).Inc()
}

// IncrementNotification counts a worker notification outcome
func IncrementNotification(routingKey, status string) {
	NotificationCount.WithLabelValues(routingKey, status).Inc()
}
