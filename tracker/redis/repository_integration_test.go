//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/tracklet/tracklet/tracker"
	"github.com/tracklet/tracklet/tracker/redis"
)

func setupRepository(t *testing.T, ctx context.Context) (*redis.Repository, func()) {
	t.Helper()

	redisContainer, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	if len(addr) > 8 && addr[:8] == "redis://" {
		addr = addr[8:]
	}
	time.Sleep(1 * time.Second)

	repo, err := redis.NewRepository(addr, "", 0)
	require.NoError(t, err, "failed to create Redis repository")

	cleanup := func() {
		repo.Close(ctx)
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}
	return repo, cleanup
}

func TestRepository_Entities_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("client round trip", func(t *testing.T) {
		repo, cleanup := setupRepository(t, ctx)
		defer cleanup()

		now := time.Now().Truncate(time.Second)
		c := tracker.Client{
			ID:         "c-1",
			Name:       "Acme",
			Color:      "#ff0000",
			HourlyRate: 80.5,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		_, err := repo.StoreClient(ctx, c)
		require.NoError(t, err)

		retrieved, err := repo.GetClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Name, retrieved.Name)
		assert.Equal(t, c.Color, retrieved.Color)
		assert.Equal(t, c.HourlyRate, retrieved.HourlyRate)
	})

	t.Run("missing entities return ErrNotFound", func(t *testing.T) {
		repo, cleanup := setupRepository(t, ctx)
		defer cleanup()

		_, err := repo.GetClient(ctx, "missing")
		assert.ErrorIs(t, err, tracker.ErrNotFound)
		_, err = repo.GetProject(ctx, "missing")
		assert.ErrorIs(t, err, tracker.ErrNotFound)
		_, err = repo.GetEntry(ctx, "missing")
		assert.ErrorIs(t, err, tracker.ErrNotFound)
	})

	t.Run("entries are indexed per project", func(t *testing.T) {
		repo, cleanup := setupRepository(t, ctx)
		defer cleanup()

		now := time.Now().Truncate(time.Second)
		for i, projectID := range []string{"p-1", "p-1", "p-2"} {
			ended := now.Add(time.Hour)
			e := tracker.TimeEntry{
				ID:        string(rune('a' + i)),
				ProjectID: projectID,
				StartedAt: now,
				EndedAt:   &ended,
				CreatedAt: now,
				UpdatedAt: now,
			}
			_, err := repo.StoreEntry(ctx, e)
			require.NoError(t, err)
		}

		entries, err := repo.ListEntriesByProject(ctx, "p-1")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("started-between filter is half open", func(t *testing.T) {
		repo, cleanup := setupRepository(t, ctx)
		defer cleanup()

		monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		nextMonth := monthStart.AddDate(0, 1, 0)

		for id, started := range map[string]time.Time{
			"in-month":    monthStart.Add(24 * time.Hour),
			"at-start":    monthStart,
			"before":      monthStart.Add(-time.Hour),
			"at-boundary": nextMonth,
		} {
			e := tracker.TimeEntry{ID: id, ProjectID: "p-1", StartedAt: started, CreatedAt: started, UpdatedAt: started}
			ended := started.Add(time.Hour)
			e.EndedAt = &ended
			_, err := repo.StoreEntry(ctx, e)
			require.NoError(t, err)
		}

		entries, err := repo.ListEntriesStartedBetween(ctx, monthStart, nextMonth)
		require.NoError(t, err)

		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		assert.ElementsMatch(t, []string{"in-month", "at-start"}, ids)
	})

	t.Run("current entry lifecycle", func(t *testing.T) {
		repo, cleanup := setupRepository(t, ctx)
		defer cleanup()

		_, err := repo.CurrentEntry(ctx)
		assert.ErrorIs(t, err, tracker.ErrNoTimer)

		now := time.Now().Truncate(time.Second)
		e := tracker.TimeEntry{ID: "e-1", ProjectID: "p-1", StartedAt: now, CreatedAt: now, UpdatedAt: now}
		_, err = repo.StoreEntry(ctx, e)
		require.NoError(t, err)
		require.NoError(t, repo.SetCurrentEntry(ctx, e.ID))

		current, err := repo.CurrentEntry(ctx)
		require.NoError(t, err)
		assert.Equal(t, e.ID, current.ID)
		assert.True(t, current.Running())

		require.NoError(t, repo.ClearCurrentEntry(ctx))
		_, err = repo.CurrentEntry(ctx)
		assert.ErrorIs(t, err, tracker.ErrNoTimer)
	})
}
