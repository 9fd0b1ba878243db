package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tracklet/tracklet/webhook/payload"
)

// Submitter abstracts the work queue for the dispatcher and the sweeper
type Submitter interface {
	Enqueue(d Delivery, cfg Config) bool
}

/* Dispatcher fans out one domain event to every active, subscribed
 * webhook. It is the entry point the domain services call after a
 * successful mutation.
 */
type Dispatcher struct {
	Repo    Repository
	Builder *payload.Builder
	Queue   Submitter
	Logger  zerolog.Logger
}

// NewDispatcher creates a dispatcher with dependency injection
func NewDispatcher(repo Repository, builder *payload.Builder, queue Submitter, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		Repo:    repo,
		Builder: builder,
		Queue:   queue,
		Logger:  logger,
	}
}

/* Trigger dispatches the event to all matching webhooks.
 *
 * Never returns an error: a webhook misconfiguration or store failure must
 * not block the domain mutation that triggered the event, so every failure
 * is logged and swallowed. No matching webhooks is a no-op. Delivery is
 * asynchronous; Trigger returns once pending records are stored and queued.
 */
func (d *Dispatcher) Trigger(ctx context.Context, event Event, data payload.Data) {
	configs, err := d.Repo.ListActiveByEvent(ctx, event)
	if err != nil {
		d.Logger.Error().
			Err(err).
			Str("event", event.String()).
			Msg("querying subscribed webhooks")
		return
	}
	if len(configs) == 0 {
		return
	}

	// built once; every matching webhook receives the same bytes
	body := d.Builder.Build(ctx, event.String(), data)

	for _, cfg := range configs {
		delivery := Delivery{
			ID:        uuid.New().String(),
			WebhookID: cfg.ID,
			Event:     event,
			Payload:   body,
			Status:    Pending,
			CreatedAt: time.Now(),
		}

		if _, err := d.Repo.StoreDelivery(ctx, delivery); err != nil {
			// isolated per webhook: keep fanning out to the others
			d.Logger.Error().
				Err(err).
				Str("webhook_id", cfg.ID).
				Str("event", event.String()).
				Msg("storing delivery record")
			continue
		}

		d.Queue.Enqueue(delivery, cfg)
	}
}
