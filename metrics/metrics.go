package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the webhook delivery system.
type Metrics struct {
	// StatusCounts maps status name to count of deliveries in that status
	StatusCounts map[string]int64 `json:"status_counts"`

	// RetryBacklog is the number of deliveries waiting for a retry sweep
	RetryBacklog int64 `json:"retry_backlog"`

	// QueueDepth is the number of deliveries buffered in the in-process queue
	QueueDepth int64 `json:"queue_depth"`

	// Throughput represents deliveries completed per time window
	Throughput ThroughputMetrics `json:"throughput"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// ThroughputMetrics represents deliveries completed over different time windows.
type ThroughputMetrics struct {
	// LastMinute is deliveries completed in the last 1 minute
	LastMinute int64 `json:"last_minute"`

	// LastFiveMinutes is deliveries completed in the last 5 minutes
	LastFiveMinutes int64 `json:"last_five_minutes"`

	// LastFifteenMinutes is deliveries completed in the last 15 minutes
	LastFifteenMinutes int64 `json:"last_fifteen_minutes"`
}

// Collector defines the interface for collecting metrics from the delivery system.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetStatusCounts returns the count of deliveries by status
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	// GetRetryBacklog returns the number of deliveries scheduled for retry
	GetRetryBacklog(ctx context.Context) (int64, error)

	// GetQueueDepth returns the number of deliveries buffered in-process
	GetQueueDepth(ctx context.Context) (int64, error)

	// GetThroughput returns deliveries completed over time windows
	GetThroughput(ctx context.Context) (ThroughputMetrics, error)
}
