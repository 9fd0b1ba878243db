package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCollector implements the Collector interface for Redis-backed metrics
type RedisCollector struct {
	client     *redis.Client
	queueDepth func() int
}

// NewRedisCollector creates a new Redis metrics collector. queueDepth reports
// the in-process delivery queue and may be nil when no queue is running.
func NewRedisCollector(client *redis.Client, queueDepth func() int) *RedisCollector {
	return &RedisCollector{
		client:     client,
		queueDepth: queueDepth,
	}
}

// Collect gathers all metrics from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Metrics, error) {
	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	retryBacklog, err := c.GetRetryBacklog(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting retry backlog: %w", err)
	}

	queueDepth, err := c.GetQueueDepth(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting queue depth: %w", err)
	}

	throughput, err := c.GetThroughput(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting throughput: %w", err)
	}

	return Metrics{
		StatusCounts: statusCounts,
		RetryBacklog: retryBacklog,
		QueueDepth:   queueDepth,
		Throughput:   throughput,
		Timestamp:    time.Now(),
	}, nil
}

// GetStatusCounts returns counts of deliveries grouped by status
func (c *RedisCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	statusCounts := map[string]int64{
		"pending":   0,
		"delivered": 0,
		"retrying":  0,
		"failed":    0,
	}

	keys, err := c.scanDeliveryKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return statusCounts, nil
	}

	// Use pipeline for efficient batch operations
	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))

	for i, key := range keys {
		cmds[i] = pipe.HGet(ctx, key, "status")
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	for _, cmd := range cmds {
		status, err := cmd.Result()
		if err != nil {
			continue
		}
		if _, exists := statusCounts[status]; exists {
			statusCounts[status]++
		}
	}

	return statusCounts, nil
}

// GetRetryBacklog returns the size of the retry schedule
func (c *RedisCollector) GetRetryBacklog(ctx context.Context) (int64, error) {
	backlog, err := c.client.ZCard(ctx, "deliveries:retrying").Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("reading retry backlog: %w", err)
	}
	return backlog, nil
}

// GetQueueDepth returns the number of deliveries buffered in-process
func (c *RedisCollector) GetQueueDepth(_ context.Context) (int64, error) {
	if c.queueDepth == nil {
		return 0, nil
	}
	return int64(c.queueDepth()), nil
}

// GetThroughput calculates deliveries completed over different time windows
func (c *RedisCollector) GetThroughput(ctx context.Context) (ThroughputMetrics, error) {
	now := time.Now()
	oneMinuteAgo := now.Add(-1 * time.Minute).Unix()
	fiveMinutesAgo := now.Add(-5 * time.Minute).Unix()
	fifteenMinutesAgo := now.Add(-15 * time.Minute).Unix()

	var lastMinute, lastFiveMinutes, lastFifteenMinutes int64

	keys, err := c.scanDeliveryKeys(ctx)
	if err != nil {
		return ThroughputMetrics{}, err
	}

	for _, key := range keys {
		data, err := c.client.HMGet(ctx, key, "status", "last_attempt_at").Result()
		if err != nil || len(data) < 2 {
			continue
		}

		status, ok1 := data[0].(string)
		attemptedAtStr, ok2 := data[1].(string)
		if !ok1 || !ok2 || status != "delivered" {
			continue
		}

		var attemptedAt int64
		fmt.Sscanf(attemptedAtStr, "%d", &attemptedAt)

		if attemptedAt >= fifteenMinutesAgo {
			lastFifteenMinutes++
			if attemptedAt >= fiveMinutesAgo {
				lastFiveMinutes++
				if attemptedAt >= oneMinuteAgo {
					lastMinute++
				}
			}
		}
	}

	return ThroughputMetrics{
		LastMinute:         lastMinute,
		LastFiveMinutes:    lastFiveMinutes,
		LastFifteenMinutes: lastFifteenMinutes,
	}, nil
}

func (c *RedisCollector) scanDeliveryKeys(ctx context.Context) ([]string, error) {
	var cursor uint64
	var keys []string

	for {
		scanKeys, nextCursor, err := c.client.Scan(ctx, cursor, "delivery:*", 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning delivery keys: %w", err)
		}

		for _, key := range scanKeys {
			// Skip the retry schedule and any other non-hash keys
			if strings.Count(key, ":") != 1 {
				continue
			}
			keys = append(keys, key)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}
