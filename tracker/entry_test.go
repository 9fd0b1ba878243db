package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tracklet/tracklet/tracker"
)

func TestTimeEntry(t *testing.T) {
	t.Run("duration of a finished entry", func(t *testing.T) {
		started := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
		ended := started.Add(90 * time.Minute)
		e := tracker.TimeEntry{StartedAt: started, EndedAt: &ended}

		assert.False(t, e.Running())
		assert.Equal(t, 90*time.Minute, e.Duration())
	})

	t.Run("running entry counts up", func(t *testing.T) {
		e := tracker.TimeEntry{StartedAt: time.Now().Add(-time.Minute)}

		assert.True(t, e.Running())
		assert.GreaterOrEqual(t, e.Duration(), time.Minute)
	})

	t.Run("earnings", func(t *testing.T) {
		started := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
		ended := started.Add(90 * time.Minute)
		e := tracker.TimeEntry{StartedAt: started, EndedAt: &ended}

		assert.InDelta(t, 75.0, e.Earnings(50), 0.001)
		assert.InDelta(t, 0.0, e.Earnings(0), 0.001)
	})
}

func TestEffectiveHourlyRate(t *testing.T) {
	client := tracker.Client{HourlyRate: 50}

	t.Run("project rate wins when positive", func(t *testing.T) {
		assert.Equal(t, 100.0, tracker.EffectiveHourlyRate(tracker.Project{HourlyRate: 100}, client))
	})

	t.Run("falls back to client rate", func(t *testing.T) {
		assert.Equal(t, 50.0, tracker.EffectiveHourlyRate(tracker.Project{}, client))
	})

	t.Run("zero when neither is set", func(t *testing.T) {
		assert.Equal(t, 0.0, tracker.EffectiveHourlyRate(tracker.Project{}, tracker.Client{}))
	})
}
