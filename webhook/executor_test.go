package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/mocks"
	"github.com/tracklet/tracklet/webhook/signature"
)

func testExecutor(repo webhook.Repository, now time.Time) *webhook.Executor {
	e := webhook.NewExecutor(repo, zerolog.Nop())
	e.Now = func() time.Time { return now }
	return e
}

func pendingDelivery(webhookID string) webhook.Delivery {
	return webhook.Delivery{
		ID:        "d1",
		WebhookID: webhookID,
		Event:     webhook.TimeEntryCreated,
		Payload:   []byte(`{"event":"time_entry_created","timestamp":"2025-03-15T10:30:00Z","data":{}}`),
		Status:    webhook.Pending,
		CreatedAt: time.Now(),
	}
}

func deliveryConfig(url string) webhook.Config {
	return webhook.Config{
		ID:            "wh-1",
		Name:          "billing",
		URL:           url,
		Events:        []webhook.Event{webhook.TimeEntryCreated},
		Active:        true,
		RetryAttempts: 3,
		TimeoutMS:     5000,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("success - 2xx delivers without touching the attempt counter", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		var saved webhook.Delivery
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(webhook.Delivery) }).
			Return(nil)

		executor := testExecutor(repo, now)
		executor.Execute(ctx, pendingDelivery("wh-1"), deliveryConfig(srv.URL))

		assert.Equal(t, webhook.Delivered, saved.Status)
		assert.Equal(t, 0, saved.Attempts)
		require.NotNil(t, saved.ResponseCode)
		assert.Equal(t, http.StatusOK, *saved.ResponseCode)
		assert.Nil(t, saved.NextRetryAt)
		require.NotNil(t, saved.LastAttemptAt)
		assert.Equal(t, now, *saved.LastAttemptAt)
	})

	t.Run("failure - 5xx schedules retry with doubling backoff", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		var saved webhook.Delivery
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(webhook.Delivery) }).
			Return(nil)

		executor := testExecutor(repo, now)
		cfg := deliveryConfig(srv.URL)

		// first attempt fails: retry in 2 minutes
		executor.Execute(ctx, pendingDelivery("wh-1"), cfg)
		assert.Equal(t, webhook.Retrying, saved.Status)
		assert.Equal(t, 1, saved.Attempts)
		require.NotNil(t, saved.NextRetryAt)
		assert.Equal(t, now.Add(2*time.Minute), *saved.NextRetryAt)

		// second attempt fails: retry in 4 minutes
		executor.Execute(ctx, saved, cfg)
		assert.Equal(t, webhook.Retrying, saved.Status)
		assert.Equal(t, 2, saved.Attempts)
		require.NotNil(t, saved.NextRetryAt)
		assert.Equal(t, now.Add(4*time.Minute), *saved.NextRetryAt)

		// third attempt succeeds, counter untouched by the success
		executor.Execute(ctx, saved, cfg)
		assert.Equal(t, webhook.Delivered, saved.Status)
		assert.Equal(t, 2, saved.Attempts)
		assert.Nil(t, saved.NextRetryAt)
	})

	t.Run("failure - attempt budget of one goes straight to failed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		var saved webhook.Delivery
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(webhook.Delivery) }).
			Return(nil)

		cfg := deliveryConfig(srv.URL)
		cfg.RetryAttempts = 1

		executor := testExecutor(repo, now)
		executor.Execute(ctx, pendingDelivery("wh-1"), cfg)

		assert.Equal(t, webhook.Failed, saved.Status)
		assert.Equal(t, 1, saved.Attempts)
		assert.Nil(t, saved.NextRetryAt)
		require.NotNil(t, saved.ResponseCode)
		assert.Equal(t, http.StatusServiceUnavailable, *saved.ResponseCode)
	})

	t.Run("failure - connection error records no response code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse all connections

		repo := mocks.NewRepository(t)
		var saved webhook.Delivery
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(webhook.Delivery) }).
			Return(nil)

		executor := testExecutor(repo, now)
		executor.Execute(ctx, pendingDelivery("wh-1"), deliveryConfig(srv.URL))

		assert.Equal(t, webhook.Retrying, saved.Status)
		assert.Equal(t, 1, saved.Attempts)
		assert.Nil(t, saved.ResponseCode)
	})

	t.Run("final delivery is a no-op", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		executor := testExecutor(repo, now)

		d := pendingDelivery("wh-1")
		d.Status = webhook.Delivered
		executor.Execute(ctx, d, deliveryConfig(srv.URL))

		d.Status = webhook.Failed
		executor.Execute(ctx, d, deliveryConfig(srv.URL))

		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("request carries signature over the exact body", func(t *testing.T) {
		var gotSig string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSig = r.Header.Get(signature.Header)
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).Return(nil)

		cfg := deliveryConfig(srv.URL)
		cfg.Secret = "s3cret"

		d := pendingDelivery("wh-1")
		testExecutor(repo, now).Execute(ctx, d, cfg)

		assert.Equal(t, d.Payload, gotBody)
		assert.True(t, signature.Verify(cfg.Secret, gotBody, gotSig))
	})

	t.Run("no signature header without a secret", func(t *testing.T) {
		var hasSig bool
		var contentType, userAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasSig = r.Header[signature.Header]
			contentType = r.Header.Get("Content-Type")
			userAgent = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		repo.On("UpdateDelivery", ctx, mock.AnythingOfType("webhook.Delivery")).Return(nil)

		testExecutor(repo, now).Execute(ctx, pendingDelivery("wh-1"), deliveryConfig(srv.URL))

		assert.False(t, hasSig)
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, webhook.DefaultUserAgent, userAgent)
	})
}
