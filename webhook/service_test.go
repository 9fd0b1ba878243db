package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/mocks"
)

func validConfig() webhook.Config {
	return webhook.Config{
		Name:          "billing",
		URL:           "https://example.com/hooks/tracklet",
		Secret:        "s3cret",
		Events:        []webhook.Event{webhook.TimeEntryCreated, webhook.TimeEntryStopped},
		Active:        true,
		RetryAttempts: 3,
		TimeoutMS:     30000,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("ListConfigs", ctx).Return([]webhook.Config{}, nil)
		repo.On("StoreConfig", ctx, webhook.MatchConfig(func(cfg webhook.Config) bool {
			return cfg.ID != "" && cfg.Name == "billing" && !cfg.CreatedAt.IsZero()
		})).Return("id", nil)

		created, err := service.Create(ctx, validConfig())

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("success - defaults applied", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("ListConfigs", ctx).Return([]webhook.Config{}, nil)
		repo.On("StoreConfig", ctx, webhook.MatchConfig(func(cfg webhook.Config) bool {
			return cfg.RetryAttempts == webhook.DefaultRetryAttempts &&
				cfg.TimeoutMS == webhook.DefaultTimeoutMS
		})).Return("id", nil)

		cfg := validConfig()
		cfg.RetryAttempts = 0
		cfg.TimeoutMS = 0

		created, err := service.Create(ctx, cfg)

		require.NoError(t, err)
		assert.Equal(t, webhook.DefaultRetryAttempts, created.RetryAttempts)
		assert.Equal(t, webhook.DefaultTimeoutMS, created.TimeoutMS)
	})

	t.Run("error - plain http url", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		cfg := validConfig()
		cfg.URL = "http://example.com/hooks/tracklet"

		_, err := service.Create(ctx, cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrInvalid)
		assert.Contains(t, err.Error(), "https")
	})

	t.Run("error - unknown event", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		cfg := validConfig()
		cfg.Events = []webhook.Event{"time_entry_exploded"}

		_, err := service.Create(ctx, cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrInvalid)
	})

	t.Run("error - no events", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		cfg := validConfig()
		cfg.Events = nil

		_, err := service.Create(ctx, cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrInvalid)
	})

	t.Run("error - duplicate name is case-insensitive", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		existing := validConfig()
		existing.ID = "existing-id"
		existing.Name = "Billing"
		repo.On("ListConfigs", ctx).Return([]webhook.Config{existing}, nil)

		_, err := service.Create(ctx, validConfig())

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrDuplicateName)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success - preserves creation time", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		existing := validConfig()
		existing.ID = "wh-1"
		existing.CreatedAt = createdAt

		repo.On("GetConfig", ctx, "wh-1").Return(existing, nil)
		repo.On("ListConfigs", ctx).Return([]webhook.Config{existing}, nil)
		repo.On("UpdateConfig", ctx, webhook.MatchConfig(func(cfg webhook.Config) bool {
			return cfg.CreatedAt.Equal(createdAt) && cfg.UpdatedAt.After(createdAt)
		})).Return(nil)

		updated := existing
		updated.URL = "https://example.com/hooks/v2"

		require.NoError(t, service.Update(ctx, updated))
	})

	t.Run("error - not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("GetConfig", ctx, "missing").Return(webhook.Config{}, webhook.ErrNotFound)

		cfg := validConfig()
		cfg.ID = "missing"

		err := service.Update(ctx, cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})

	t.Run("error - rename onto another webhook", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		existing := validConfig()
		existing.ID = "wh-1"

		other := validConfig()
		other.ID = "wh-2"
		other.Name = "reporting"

		repo.On("GetConfig", ctx, "wh-1").Return(existing, nil)
		repo.On("ListConfigs", ctx).Return([]webhook.Config{existing, other}, nil)

		updated := existing
		updated.Name = "Reporting"

		err := service.Update(ctx, updated)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrDuplicateName)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success - cascades delivery history", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		existing := validConfig()
		existing.ID = "wh-1"

		repo.On("GetConfig", ctx, "wh-1").Return(existing, nil)
		repo.On("DeleteDeliveriesByWebhook", ctx, "wh-1").Return(nil)
		repo.On("DeleteConfig", ctx, "wh-1").Return(nil)

		require.NoError(t, service.Delete(ctx, "wh-1"))
		repo.AssertCalled(t, "DeleteDeliveriesByWebhook", ctx, "wh-1")
		repo.AssertCalled(t, "DeleteConfig", ctx, "wh-1")
	})

	t.Run("error - not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("GetConfig", ctx, "missing").Return(webhook.Config{}, webhook.ErrNotFound)

		err := service.Delete(ctx, "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})
}

func TestDeliveries(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		records := []webhook.Delivery{
			{ID: "d2", WebhookID: "wh-1", Status: webhook.Delivered},
			{ID: "d1", WebhookID: "wh-1", Status: webhook.Failed},
		}
		repo.On("ListDeliveries", ctx, "wh-1", 50).Return(records, nil)

		got, err := service.Deliveries(ctx, "wh-1", 50)

		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("error - store failure", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := webhook.NewService(repo)

		repo.On("ListDeliveries", ctx, "wh-1", 50).Return(nil, errors.New("redis down"))

		_, err := service.Deliveries(ctx, "wh-1", 50)

		require.Error(t, err)
	})
}
