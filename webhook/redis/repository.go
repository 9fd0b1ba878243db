package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tracklet/tracklet/webhook"
)

/* Redis implementation of webhook.Repository
 * Uses Redis Hashes for config and delivery records, a Set per index,
 * and a Sorted Set scored by next_retry_at for the retry sweep.
 */

const (
	configPrefix   = "webhookcfg" // Hash naming: webhookcfg:{id}
	configIndexKey = "webhookcfgs"
	deliveryPrefix = "delivery"             // Hash naming: delivery:{id}
	retryingKey    = "deliveries:retrying"  // ZSet: member delivery id, score next_retry_at unix
	historySuffix  = "deliveries"           // List naming: webhookcfg:{id}:deliveries, newest first
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// NewRepositoryWithClient wraps an existing client (shared across repositories)
func NewRepositoryWithClient(client *redis.Client) *Repository {
	return &Repository{client: client}
}

// StoreConfig stores a webhook config hash and indexes its id
func (r *Repository) StoreConfig(ctx context.Context, cfg webhook.Config) (string, error) {
	eventsJSON, err := json.Marshal(cfg.Events)
	if err != nil {
		return "", fmt.Errorf("marshaling events: %w", err)
	}

	hashKey := fmt.Sprintf("%s:%s", configPrefix, cfg.ID)
	err = r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":             cfg.ID,
		"name":           cfg.Name,
		"url":            cfg.URL,
		"secret":         cfg.Secret,
		"events":         string(eventsJSON),
		"active":         boolToInt(cfg.Active),
		"retry_attempts": cfg.RetryAttempts,
		"timeout_ms":     cfg.TimeoutMS,
		"created_at":     cfg.CreatedAt.Unix(),
		"updated_at":     cfg.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing webhook config: %w", err)
	}

	if err := r.client.SAdd(ctx, configIndexKey, cfg.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing webhook config: %w", err)
	}

	return cfg.ID, nil
}

// GetConfig retrieves a webhook config by ID
func (r *Repository) GetConfig(ctx context.Context, id string) (webhook.Config, error) {
	hashKey := fmt.Sprintf("%s:%s", configPrefix, id)

	data, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return webhook.Config{}, fmt.Errorf("getting webhook config: %w", err)
	}
	if len(data) == 0 {
		return webhook.Config{}, fmt.Errorf("%w: %s", webhook.ErrNotFound, id)
	}

	return configFromHash(data)
}

// ListConfigs returns all webhook configs
func (r *Repository) ListConfigs(ctx context.Context) ([]webhook.Config, error) {
	ids, err := r.client.SMembers(ctx, configIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing webhook configs: %w", err)
	}

	configs := make([]webhook.Config, 0, len(ids))
	for _, id := range ids {
		cfg, err := r.GetConfig(ctx, id)
		if err != nil {
			continue
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// ListActiveByEvent returns active configs subscribed to the event kind
func (r *Repository) ListActiveByEvent(ctx context.Context, event webhook.Event) ([]webhook.Config, error) {
	all, err := r.ListConfigs(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]webhook.Config, 0, len(all))
	for _, cfg := range all {
		if cfg.Active && cfg.Subscribed(event) {
			matches = append(matches, cfg)
		}
	}
	return matches, nil
}

// UpdateConfig overwrites a config hash in place
func (r *Repository) UpdateConfig(ctx context.Context, cfg webhook.Config) error {
	exists, err := r.client.SIsMember(ctx, configIndexKey, cfg.ID).Result()
	if err != nil {
		return fmt.Errorf("checking webhook config: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", webhook.ErrNotFound, cfg.ID)
	}
	if _, err := r.StoreConfig(ctx, cfg); err != nil {
		return fmt.Errorf("updating webhook config: %w", err)
	}
	return nil
}

// DeleteConfig removes a config hash and its index entry
func (r *Repository) DeleteConfig(ctx context.Context, id string) error {
	hashKey := fmt.Sprintf("%s:%s", configPrefix, id)

	if err := r.client.Del(ctx, hashKey).Err(); err != nil {
		return fmt.Errorf("deleting webhook config: %w", err)
	}
	if err := r.client.SRem(ctx, configIndexKey, id).Err(); err != nil {
		return fmt.Errorf("removing webhook config index: %w", err)
	}
	return nil
}

// StoreDelivery stores a delivery hash and prepends it to the webhook's history
func (r *Repository) StoreDelivery(ctx context.Context, d webhook.Delivery) (string, error) {
	if err := r.writeDelivery(ctx, d); err != nil {
		return "", err
	}

	historyKey := fmt.Sprintf("%s:%s:%s", configPrefix, d.WebhookID, historySuffix)
	if err := r.client.LPush(ctx, historyKey, d.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing delivery: %w", err)
	}

	return d.ID, nil
}

// GetDelivery retrieves a delivery record by ID
func (r *Repository) GetDelivery(ctx context.Context, id string) (webhook.Delivery, error) {
	hashKey := fmt.Sprintf("%s:%s", deliveryPrefix, id)

	data, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return webhook.Delivery{}, fmt.Errorf("getting delivery: %w", err)
	}
	if len(data) == 0 {
		return webhook.Delivery{}, fmt.Errorf("delivery not found: %s", id)
	}

	return deliveryFromHash(data), nil
}

// ListDeliveries returns a webhook's delivery history, newest first
func (r *Repository) ListDeliveries(ctx context.Context, webhookID string, limit int) ([]webhook.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}
	historyKey := fmt.Sprintf("%s:%s:%s", configPrefix, webhookID, historySuffix)

	ids, err := r.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}

	deliveries := make([]webhook.Delivery, 0, len(ids))
	for _, id := range ids {
		d, err := r.GetDelivery(ctx, id)
		if err != nil {
			continue
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

/* UpdateDelivery persists the record and keeps the retry index in sync:
 * retrying records are scored by next_retry_at, any other status drops
 * them from the index.
 */
func (r *Repository) UpdateDelivery(ctx context.Context, d webhook.Delivery) error {
	if err := r.writeDelivery(ctx, d); err != nil {
		return err
	}

	if d.Status == webhook.Retrying && d.NextRetryAt != nil {
		err := r.client.ZAdd(ctx, retryingKey, redis.Z{
			Score:  float64(d.NextRetryAt.Unix()),
			Member: d.ID,
		}).Err()
		if err != nil {
			return fmt.Errorf("indexing retry: %w", err)
		}
		return nil
	}

	if err := r.client.ZRem(ctx, retryingKey, d.ID).Err(); err != nil {
		return fmt.Errorf("removing retry index: %w", err)
	}
	return nil
}

// DeleteDeliveriesByWebhook cascades a webhook's delivery history
func (r *Repository) DeleteDeliveriesByWebhook(ctx context.Context, webhookID string) error {
	historyKey := fmt.Sprintf("%s:%s:%s", configPrefix, webhookID, historySuffix)

	ids, err := r.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("listing deliveries: %w", err)
	}

	for _, id := range ids {
		r.client.Del(ctx, fmt.Sprintf("%s:%s", deliveryPrefix, id))
		r.client.ZRem(ctx, retryingKey, id)
	}

	if err := r.client.Del(ctx, historyKey).Err(); err != nil {
		return fmt.Errorf("deleting delivery history: %w", err)
	}
	return nil
}

/* ClaimDueRetries pops due entries from the retry index and returns their
 * records. The ZRem acts as the claim: a record is handed out at most once
 * per schedule, the executor re-indexes it if another retry is needed.
 */
func (r *Repository) ClaimDueRetries(ctx context.Context, now time.Time, limit int) ([]webhook.Delivery, error) {
	if limit <= 0 {
		limit = 100
	}

	ids, err := r.client.ZRangeByScore(ctx, retryingKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", now.Unix()),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("querying due retries: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := r.client.ZRem(ctx, retryingKey, members...).Err(); err != nil {
		return nil, fmt.Errorf("claiming due retries: %w", err)
	}

	deliveries := make([]webhook.Delivery, 0, len(ids))
	for _, id := range ids {
		d, err := r.GetDelivery(ctx, id)
		if err != nil {
			continue
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// Helper functions

func (r *Repository) writeDelivery(ctx context.Context, d webhook.Delivery) error {
	hashKey := fmt.Sprintf("%s:%s", deliveryPrefix, d.ID)

	fields := map[string]interface{}{
		"id":         d.ID,
		"webhook_id": d.WebhookID,
		"event":      d.Event.String(),
		"payload":    d.Payload,
		"status":     d.Status.String(),
		"attempts":   d.Attempts,
		"created_at": d.CreatedAt.Unix(),
	}
	fields["last_attempt_at"] = unixOrZero(d.LastAttemptAt)
	fields["next_retry_at"] = unixOrZero(d.NextRetryAt)
	if d.ResponseCode != nil {
		fields["response_code"] = *d.ResponseCode
	} else {
		fields["response_code"] = 0
	}

	if err := r.client.HSet(ctx, hashKey, fields).Err(); err != nil {
		return fmt.Errorf("storing delivery: %w", err)
	}
	return nil
}

func configFromHash(data map[string]string) (webhook.Config, error) {
	var events []webhook.Event
	if eventsStr, ok := data["events"]; ok && eventsStr != "" {
		if err := json.Unmarshal([]byte(eventsStr), &events); err != nil {
			return webhook.Config{}, fmt.Errorf("unmarshaling events: %w", err)
		}
	}

	return webhook.Config{
		ID:            data["id"],
		Name:          data["name"],
		URL:           data["url"],
		Secret:        data["secret"],
		Events:        events,
		Active:        parseInt64(data["active"]) == 1,
		RetryAttempts: int(parseInt64(data["retry_attempts"])),
		TimeoutMS:     int(parseInt64(data["timeout_ms"])),
		CreatedAt:     time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:     time.Unix(parseInt64(data["updated_at"]), 0),
	}, nil
}

func deliveryFromHash(data map[string]string) webhook.Delivery {
	d := webhook.Delivery{
		ID:        data["id"],
		WebhookID: data["webhook_id"],
		Event:     webhook.Event(data["event"]),
		Payload:   []byte(data["payload"]),
		Status:    webhook.NewStatus(data["status"]),
		Attempts:  int(parseInt64(data["attempts"])),
		CreatedAt: time.Unix(parseInt64(data["created_at"]), 0),
	}
	if ts := parseInt64(data["last_attempt_at"]); ts > 0 {
		t := time.Unix(ts, 0)
		d.LastAttemptAt = &t
	}
	if ts := parseInt64(data["next_retry_at"]); ts > 0 {
		t := time.Unix(ts, 0)
		d.NextRetryAt = &t
	}
	if code := int(parseInt64(data["response_code"])); code > 0 {
		d.ResponseCode = &code
	}
	return d
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseInt64(s string) int64 {
	var result int64
	fmt.Sscanf(s, "%d", &result)
	return result
}
