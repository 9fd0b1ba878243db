package webhook

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

/* Sweeper re-fires deliveries parked in retrying state once their
 * NextRetryAt has passed. Claiming removes a record from the retry index,
 * so each schedule is handed to the queue at most once; the executor
 * re-indexes the record if another retry is needed.
 */
type Sweeper struct {
	Repo     Repository
	Queue    Submitter
	Logger   zerolog.Logger
	Interval time.Duration
	Batch    int
	Now      func() time.Time
}

// NewSweeper creates a sweeper polling at the given interval
func NewSweeper(repo Repository, queue Submitter, interval time.Duration, logger zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Sweeper{
		Repo:     repo,
		Queue:    queue,
		Logger:   logger,
		Interval: interval,
		Batch:    100,
		Now:      time.Now,
	}
}

// Run polls until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep claims due retries and resubmits them to the queue
func (s *Sweeper) Sweep(ctx context.Context) {
	due, err := s.Repo.ClaimDueRetries(ctx, s.Now(), s.Batch)
	if err != nil {
		s.Logger.Error().Err(err).Msg("claiming due retries")
		return
	}

	for _, d := range due {
		cfg, err := s.Repo.GetConfig(ctx, d.WebhookID)
		if err != nil || !cfg.Active {
			// config deleted or deactivated since the retry was scheduled
			d.Status = Failed
			d.NextRetryAt = nil
			if uerr := s.Repo.UpdateDelivery(ctx, d); uerr != nil {
				s.Logger.Error().Err(uerr).Str("delivery_id", d.ID).Msg("parking orphaned delivery")
			}
			continue
		}

		if !s.Queue.Enqueue(d, cfg) {
			// queue full: leave the schedule as is so the next sweep
			// claims it again
			if uerr := s.Repo.UpdateDelivery(ctx, d); uerr != nil {
				s.Logger.Error().Err(uerr).Str("delivery_id", d.ID).Msg("re-indexing delivery")
			}
		}
	}
}
