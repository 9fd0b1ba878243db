package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/mocks"
	"github.com/tracklet/tracklet/webhook/payload"
)

type nullAggregates struct{}

func (nullAggregates) ProjectTrackedHours(ctx context.Context, projectID string) (float64, error) {
	return 0, nil
}

func (nullAggregates) MonthToDate(ctx context.Context, now time.Time) (payload.MonthSummary, error) {
	return payload.MonthSummary{}, nil
}

type fakeSubmitter struct {
	jobs []webhook.Delivery
	full bool
}

func (f *fakeSubmitter) Enqueue(d webhook.Delivery, cfg webhook.Config) bool {
	if f.full {
		return false
	}
	f.jobs = append(f.jobs, d)
	return true
}

func TestTrigger(t *testing.T) {
	ctx := context.Background()
	builder := payload.NewBuilder(nullAggregates{})

	t.Run("success - fans out to every subscribed webhook", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		queue := &fakeSubmitter{}
		dispatcher := webhook.NewDispatcher(repo, builder, queue, zerolog.Nop())

		first := validConfig()
		first.ID = "wh-1"
		second := validConfig()
		second.ID = "wh-2"
		second.Name = "reporting"

		repo.On("ListActiveByEvent", ctx, webhook.ClientCreated).
			Return([]webhook.Config{first, second}, nil)
		repo.On("StoreDelivery", ctx, webhook.MatchDelivery(func(d webhook.Delivery) bool {
			return d.ID != "" && d.Status == webhook.Pending && d.Event == webhook.ClientCreated
		})).Return("id", nil).Times(2)

		dispatcher.Trigger(ctx, webhook.ClientCreated, payload.ClientSnapshot{ID: "c1", Name: "Acme"})

		require.Len(t, queue.jobs, 2)
		assert.Equal(t, "wh-1", queue.jobs[0].WebhookID)
		assert.Equal(t, "wh-2", queue.jobs[1].WebhookID)

		// every matching webhook receives the same bytes
		assert.Equal(t, queue.jobs[0].Payload, queue.jobs[1].Payload)

		var env struct {
			Event string `json:"event"`
		}
		require.NoError(t, json.Unmarshal(queue.jobs[0].Payload, &env))
		assert.Equal(t, "client_created", env.Event)
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		queue := &fakeSubmitter{}
		dispatcher := webhook.NewDispatcher(repo, builder, queue, zerolog.Nop())

		repo.On("ListActiveByEvent", ctx, webhook.TimeEntryDeleted).
			Return([]webhook.Config{}, nil)

		dispatcher.Trigger(ctx, webhook.TimeEntryDeleted, nil)

		assert.Empty(t, queue.jobs)
	})

	t.Run("store failure for one webhook does not block the others", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		queue := &fakeSubmitter{}
		dispatcher := webhook.NewDispatcher(repo, builder, queue, zerolog.Nop())

		broken := validConfig()
		broken.ID = "wh-broken"
		healthy := validConfig()
		healthy.ID = "wh-healthy"
		healthy.Name = "reporting"

		repo.On("ListActiveByEvent", ctx, webhook.ClientCreated).
			Return([]webhook.Config{broken, healthy}, nil)
		repo.On("StoreDelivery", ctx, webhook.MatchDelivery(func(d webhook.Delivery) bool {
			return d.WebhookID == "wh-broken"
		})).Return("", errors.New("redis down"))
		repo.On("StoreDelivery", ctx, webhook.MatchDelivery(func(d webhook.Delivery) bool {
			return d.WebhookID == "wh-healthy"
		})).Return("id", nil)

		dispatcher.Trigger(ctx, webhook.ClientCreated, payload.ClientSnapshot{ID: "c1"})

		require.Len(t, queue.jobs, 1)
		assert.Equal(t, "wh-healthy", queue.jobs[0].WebhookID)
	})

	t.Run("listing failure is swallowed", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		queue := &fakeSubmitter{}
		dispatcher := webhook.NewDispatcher(repo, builder, queue, zerolog.Nop())

		repo.On("ListActiveByEvent", ctx, webhook.ClientCreated).
			Return(nil, errors.New("redis down"))

		dispatcher.Trigger(ctx, webhook.ClientCreated, payload.ClientSnapshot{ID: "c1"})

		assert.Empty(t, queue.jobs)
	})

	t.Run("records stay stored when the queue is full", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		queue := &fakeSubmitter{full: true}
		dispatcher := webhook.NewDispatcher(repo, builder, queue, zerolog.Nop())

		cfg := validConfig()
		cfg.ID = "wh-1"

		repo.On("ListActiveByEvent", ctx, webhook.ClientCreated).
			Return([]webhook.Config{cfg}, nil)
		repo.On("StoreDelivery", ctx, webhook.MatchDelivery(func(d webhook.Delivery) bool {
			return d.Status == webhook.Pending
		})).Return("id", nil)

		dispatcher.Trigger(ctx, webhook.ClientCreated, payload.ClientSnapshot{ID: "c1"})

		assert.Empty(t, queue.jobs)
	})
}
