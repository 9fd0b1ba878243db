package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCollector_NewRedisCollector(t *testing.T) {
	t.Run("creates collector successfully", func(t *testing.T) {
		collector := NewRedisCollector(nil, func() int { return 3 })

		assert.NotNil(t, collector)
		assert.NotNil(t, collector.queueDepth)
	})
}

func TestRedisCollector_GetQueueDepth(t *testing.T) {
	ctx := context.Background()

	t.Run("reports the injected queue depth", func(t *testing.T) {
		collector := NewRedisCollector(nil, func() int { return 7 })

		depth, err := collector.GetQueueDepth(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), depth)
	})

	t.Run("zero without a running queue", func(t *testing.T) {
		collector := NewRedisCollector(nil, nil)

		depth, err := collector.GetQueueDepth(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), depth)
	})
}

func TestMetrics_Struct(t *testing.T) {
	t.Run("metrics struct has all required fields", func(t *testing.T) {
		m := Metrics{
			StatusCounts: map[string]int64{
				"pending":   100,
				"delivered": 50,
				"retrying":  8,
				"failed":    5,
			},
			RetryBacklog: 8,
			QueueDepth:   3,
			Throughput: ThroughputMetrics{
				LastMinute:         10,
				LastFiveMinutes:    45,
				LastFifteenMinutes: 120,
			},
		}

		assert.NotNil(t, m.StatusCounts)
		assert.Equal(t, int64(8), m.RetryBacklog)
		assert.Equal(t, int64(3), m.QueueDepth)
		assert.Equal(t, int64(10), m.Throughput.LastMinute)
	})
}
