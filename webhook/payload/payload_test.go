package payload

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregates struct {
	projectHours float64
	month        MonthSummary
	err          error
}

func (s stubAggregates) ProjectTrackedHours(ctx context.Context, projectID string) (float64, error) {
	return s.projectHours, s.err
}

func (s stubAggregates) MonthToDate(ctx context.Context, now time.Time) (MonthSummary, error) {
	return s.month, s.err
}

func testBuilder(agg Aggregates, now time.Time) *Builder {
	return &Builder{
		Agg: agg,
		Now: func() time.Time { return now },
	}
}

func decode(t *testing.T, body []byte) (string, string, map[string]any) {
	t.Helper()
	var env struct {
		Event     string         `json:"event"`
		Timestamp string         `json:"timestamp"`
		Data      map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Event, env.Timestamp, env.Data
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("envelope shape", func(t *testing.T) {
		b := testBuilder(stubAggregates{}, now)

		body := b.Build(ctx, "client_created", ClientSnapshot{
			ID:         "c1",
			Name:       "Acme",
			Color:      "#ff0000",
			HourlyRate: 80,
		})

		event, timestamp, data := decode(t, body)
		assert.Equal(t, "client_created", event)
		assert.Equal(t, "2025-03-15T10:30:00Z", timestamp)
		assert.Equal(t, "c1", data["id"])
		assert.Equal(t, "Acme", data["name"])
		assert.Equal(t, "#ff0000", data["color"])
		assert.Equal(t, 80.0, data["hourlyRate"])
	})

	t.Run("timestamp is always UTC", func(t *testing.T) {
		paris := time.FixedZone("CET", 3600)
		b := testBuilder(stubAggregates{}, time.Date(2025, 3, 15, 11, 30, 0, 0, paris))

		_, timestamp, _ := decode(t, b.Build(ctx, "client_created", ClientSnapshot{ID: "c1"}))
		assert.Equal(t, "2025-03-15T10:30:00Z", timestamp)
	})

	t.Run("time entry - client rate applies when project rate is zero", func(t *testing.T) {
		b := testBuilder(stubAggregates{
			projectHours: 12.5,
			month:        MonthSummary{Hours: 40, Earnings: 2000},
		}, now)

		started := now.Add(-90 * time.Minute)
		snap := TimeEntrySnapshot{
			ID:          "e1",
			Description: "refactoring",
			StartedAt:   started,
			EndedAt:     &now,
			Duration:    90 * time.Minute,
			Project:     ProjectSummary{ID: "p1", Name: "Website", HourlyRate: 0},
			Client:      ClientSummary{ID: "c1", Name: "Acme", HourlyRate: 50},
		}

		_, _, data := decode(t, b.Build(ctx, "time_entry_created", snap))
		assert.Equal(t, "e1", data["id"])
		assert.Equal(t, "refactoring", data["description"])
		assert.Equal(t, 90.0, data["durationMinutes"])
		assert.Equal(t, 50.0, data["hourlyRate"])
		assert.Equal(t, 75.0, data["earnings"])
		assert.Equal(t, 12.5, data["projectTotalHours"])

		month, ok := data["currentMonth"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 40.0, month["hours"])
		assert.Equal(t, 2000.0, month["earnings"])
	})

	t.Run("time entry - project rate overrides client rate", func(t *testing.T) {
		b := testBuilder(stubAggregates{}, now)

		snap := TimeEntrySnapshot{
			ID:       "e1",
			Duration: 2 * time.Hour,
			Project:  ProjectSummary{ID: "p1", HourlyRate: 100},
			Client:   ClientSummary{ID: "c1", HourlyRate: 50},
		}

		_, _, data := decode(t, b.Build(ctx, "time_entry_stopped", snap))
		assert.Equal(t, 100.0, data["hourlyRate"])
		assert.Equal(t, 200.0, data["earnings"])
	})

	t.Run("update diff carries old and new values", func(t *testing.T) {
		b := testBuilder(stubAggregates{}, now)

		change := ProjectChange{
			ID:  "p1",
			Old: ProjectFields{Name: "Website", HourlyRate: 80},
			New: ProjectFields{Name: "Website v2", HourlyRate: 90},
		}

		_, _, data := decode(t, b.Build(ctx, "project_updated", change))
		assert.Equal(t, "p1", data["id"])

		oldValues, ok := data["oldValues"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Website", oldValues["name"])
		assert.Equal(t, 80.0, oldValues["hourlyRate"])

		newValues, ok := data["newValues"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Website v2", newValues["name"])
		assert.Equal(t, 90.0, newValues["hourlyRate"])
	})

	t.Run("invoice data passes through", func(t *testing.T) {
		b := testBuilder(stubAggregates{}, now)

		_, _, data := decode(t, b.Build(ctx, "on_invoice_created", InvoiceData{
			"invoice_number": "2025-001",
			"total":          1234.5,
		}))
		assert.Equal(t, "2025-001", data["invoice_number"])
		assert.Equal(t, 1234.5, data["total"])
	})

	t.Run("degrades to empty data when aggregates fail", func(t *testing.T) {
		b := testBuilder(stubAggregates{err: errors.New("store down")}, now)

		snap := TimeEntrySnapshot{
			ID:       "e1",
			Duration: time.Hour,
			Project:  ProjectSummary{ID: "p1"},
			Client:   ClientSummary{ID: "c1", HourlyRate: 50},
		}

		event, timestamp, data := decode(t, b.Build(ctx, "time_entry_created", snap))
		assert.Equal(t, "time_entry_created", event)
		assert.Equal(t, "2025-03-15T10:30:00Z", timestamp)
		assert.Empty(t, data)
	})

	t.Run("nil data yields empty object", func(t *testing.T) {
		b := testBuilder(stubAggregates{}, now)

		event, _, data := decode(t, b.Build(ctx, "time_entry_deleted", nil))
		assert.Equal(t, "time_entry_deleted", event)
		assert.Empty(t, data)
	})

	t.Run("same input yields same bytes", func(t *testing.T) {
		b := testBuilder(stubAggregates{projectHours: 5}, now)

		snap := TimeEntrySnapshot{ID: "e1", Duration: time.Hour, Client: ClientSummary{HourlyRate: 10}}
		assert.Equal(t, b.Build(ctx, "time_entry_created", snap), b.Build(ctx, "time_entry_created", snap))
	})
}

func TestEffectiveHourlyRate(t *testing.T) {
	t.Run("project rate wins when positive", func(t *testing.T) {
		s := TimeEntrySnapshot{
			Project: ProjectSummary{HourlyRate: 120},
			Client:  ClientSummary{HourlyRate: 90},
		}
		assert.Equal(t, 120.0, s.EffectiveHourlyRate())
	})

	t.Run("falls back to client rate", func(t *testing.T) {
		s := TimeEntrySnapshot{
			Client: ClientSummary{HourlyRate: 90},
		}
		assert.Equal(t, 90.0, s.EffectiveHourlyRate())
	})

	t.Run("zero when neither is set", func(t *testing.T) {
		assert.Equal(t, 0.0, TimeEntrySnapshot{}.EffectiveHourlyRate())
	})
}
