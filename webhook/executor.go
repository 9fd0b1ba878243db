package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tracklet/tracklet/webhook/signature"
)

// DefaultUserAgent identifies outbound webhook requests
const DefaultUserAgent = "tracklet-webhooks/1.0"

// respBodyLimit caps how much of a response body is drained before the
// connection is released for reuse
const respBodyLimit = 4 << 10

/* Executor performs a single delivery attempt and advances the record
 * through the retry state machine. Every transition is persisted before
 * the attempt returns; within one record attempts are strictly sequential
 * because each record is owned by exactly one queue job at a time.
 */
type Executor struct {
	Repo      Repository
	Client    *http.Client
	UserAgent string
	Logger    zerolog.Logger
	Now       func() time.Time
}

// NewExecutor creates an executor with default HTTP client and user agent
func NewExecutor(repo Repository, logger zerolog.Logger) *Executor {
	return &Executor{
		Repo:      repo,
		Client:    &http.Client{},
		UserAgent: DefaultUserAgent,
		Logger:    logger,
		Now:       time.Now,
	}
}

/* Execute runs one attempt for the delivery against its webhook.
 *
 * HTTP status in [200,300) transitions the record to delivered. Anything
 * else - non-2xx, network error, timeout - increments the attempts counter
 * and either schedules a retry at now + 2^attempts minutes or, once the
 * webhook's attempt budget is exhausted, parks the record as failed.
 */
func (e *Executor) Execute(ctx context.Context, d Delivery, cfg Config) {
	if d.Status.IsFinal() {
		return
	}

	code, err := e.attempt(ctx, d, cfg)
	now := e.Now()
	d.LastAttemptAt = &now

	if err == nil && code >= 200 && code < 300 {
		d.Status = Delivered
		d.ResponseCode = &code
		d.NextRetryAt = nil
		e.persist(ctx, d)
		e.Logger.Info().
			Str("delivery_id", d.ID).
			Str("webhook_id", cfg.ID).
			Str("event", d.Event.String()).
			Int("status_code", code).
			Int("attempts", d.Attempts).
			Msg("webhook delivered")
		return
	}

	d.Attempts++
	if code != 0 {
		d.ResponseCode = &code
	}

	if d.Attempts < cfg.RetryAttempts {
		d.Status = Retrying
		next := now.Add(Backoff(d.Attempts))
		d.NextRetryAt = &next
	} else {
		d.Status = Failed
		d.NextRetryAt = nil
	}
	e.persist(ctx, d)

	evt := e.Logger.Warn().
		Str("delivery_id", d.ID).
		Str("webhook_id", cfg.ID).
		Str("event", d.Event.String()).
		Str("status", d.Status.String()).
		Int("attempts", d.Attempts)
	if code != 0 {
		evt = evt.Int("status_code", code)
	}
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg("webhook delivery attempt failed")
}

// attempt performs the HTTP POST, bounded by the webhook's timeout.
// Returns the response status code when a response was received.
func (e *Executor) attempt(ctx context.Context, d Delivery, cfg Config) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(d.Payload))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", e.UserAgent)
	if cfg.Secret != "" {
		// signed over the exact bytes in the request body
		req.Header.Set(signature.Header, signature.Sign(cfg.Secret, d.Payload))
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, respBodyLimit))

	return resp.StatusCode, nil
}

func (e *Executor) persist(ctx context.Context, d Delivery) {
	if err := e.Repo.UpdateDelivery(ctx, d); err != nil {
		e.Logger.Error().
			Err(err).
			Str("delivery_id", d.ID).
			Msg("persisting delivery record")
	}
}
