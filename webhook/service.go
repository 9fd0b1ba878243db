package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

/* Service represents the business logic layer for webhook configuration
 * Uses pointer semantics as it's an API, not data
 */

// Defaults applied when a config omits the optional tuning knobs
const (
	DefaultRetryAttempts = 3
	DefaultTimeoutMS     = 30000
)

var (
	ErrNotFound      = errors.New("webhook not found")
	ErrDuplicateName = errors.New("webhook name already in use")
	ErrInvalid       = errors.New("invalid webhook")
)

// UseCase defines the business operations for webhook management
type UseCase interface {
	Create(ctx context.Context, cfg Config) (Config, error)
	Get(ctx context.Context, id string) (Config, error)
	List(ctx context.Context) ([]Config, error)
	Update(ctx context.Context, cfg Config) error
	Delete(ctx context.Context, id string) error
	Deliveries(ctx context.Context, webhookID string, limit int) ([]Delivery, error)
}

type Service struct {
	Repo Repository
}

// NewService creates a new webhook config service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create validates and stores a new webhook config
func (s *Service) Create(ctx context.Context, cfg Config) (Config, error) {
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.TimeoutMS == 0 {
		cfg.TimeoutMS = DefaultTimeoutMS
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.checkName(ctx, cfg.Name, ""); err != nil {
		return Config{}, err
	}

	cfg.ID = uuid.New().String()
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = cfg.CreatedAt

	if _, err := s.Repo.StoreConfig(ctx, cfg); err != nil {
		return Config{}, fmt.Errorf("storing webhook: %w", err)
	}
	return cfg, nil
}

// Get retrieves a webhook config by ID
func (s *Service) Get(ctx context.Context, id string) (Config, error) {
	cfg, err := s.Repo.GetConfig(ctx, id)
	if err != nil {
		return Config{}, fmt.Errorf("getting webhook: %w", err)
	}
	return cfg, nil
}

// List returns all webhook configs
func (s *Service) List(ctx context.Context) ([]Config, error) {
	configs, err := s.Repo.ListConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}
	return configs, nil
}

// Update mutates an existing webhook config in place
func (s *Service) Update(ctx context.Context, cfg Config) error {
	existing, err := s.Repo.GetConfig(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("getting webhook: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.checkName(ctx, cfg.Name, cfg.ID); err != nil {
		return err
	}

	cfg.CreatedAt = existing.CreatedAt
	cfg.UpdatedAt = time.Now()

	if err := s.Repo.UpdateConfig(ctx, cfg); err != nil {
		return fmt.Errorf("updating webhook: %w", err)
	}
	return nil
}

/* Delete removes a config permanently and cascades its delivery history.
 * Deletion is immediate, there is no soft-delete.
 */
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.GetConfig(ctx, id); err != nil {
		return fmt.Errorf("getting webhook: %w", err)
	}
	if err := s.Repo.DeleteDeliveriesByWebhook(ctx, id); err != nil {
		return fmt.Errorf("deleting delivery history: %w", err)
	}
	if err := s.Repo.DeleteConfig(ctx, id); err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}
	return nil
}

// Deliveries returns the delivery history for a webhook, newest first
func (s *Service) Deliveries(ctx context.Context, webhookID string, limit int) ([]Delivery, error) {
	deliveries, err := s.Repo.ListDeliveries(ctx, webhookID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	return deliveries, nil
}

// checkName enforces case-insensitive name uniqueness across all configs
func (s *Service) checkName(ctx context.Context, name, selfID string) error {
	configs, err := s.Repo.ListConfigs(ctx)
	if err != nil {
		return fmt.Errorf("listing webhooks: %w", err)
	}
	for _, other := range configs {
		if other.ID == selfID {
			continue
		}
		if strings.EqualFold(other.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	return nil
}
