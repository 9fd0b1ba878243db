package webhook

import (
	"context"
	"time"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// ConfigReader provides read operations for webhook configs
type ConfigReader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	GetConfig(ctx context.Context, id string) (Config, error)
	ListConfigs(ctx context.Context) ([]Config, error)
	/* ListActiveByEvent returns every active config subscribed to the
	 * given event kind. This is the dispatcher's fan-out query.
	 */
	ListActiveByEvent(ctx context.Context, event Event) ([]Config, error)
}

// ConfigWriter provides write operations for webhook configs
type ConfigWriter interface {
	StoreConfig(ctx context.Context, cfg Config) (string, error)
	UpdateConfig(ctx context.Context, cfg Config) error
	/* DeleteConfig removes a config permanently. Delivery history for the
	 * config is cascaded by the caller via DeleteDeliveriesByWebhook.
	 */
	DeleteConfig(ctx context.Context, id string) error
}

// DeliveryReader provides read operations for delivery records
type DeliveryReader interface {
	GetDelivery(ctx context.Context, id string) (Delivery, error)
	ListDeliveries(ctx context.Context, webhookID string, limit int) ([]Delivery, error)
}

// DeliveryWriter provides write operations for delivery records
type DeliveryWriter interface {
	StoreDelivery(ctx context.Context, d Delivery) (string, error)
	/* UpdateDelivery persists the record after a state transition and
	 * keeps the retry index in sync: a retrying record is (re)indexed by
	 * its NextRetryAt, any other status removes it from the index.
	 */
	UpdateDelivery(ctx context.Context, d Delivery) error
	DeleteDeliveriesByWebhook(ctx context.Context, webhookID string) error
}

// RetryClaimer provides the sweep query for due retries
type RetryClaimer interface {
	/* ClaimDueRetries returns up to limit retrying deliveries whose
	 * NextRetryAt is at or before now, removing them from the retry
	 * index so a record is handed out at most once per schedule.
	 */
	ClaimDueRetries(ctx context.Context, now time.Time, limit int) ([]Delivery, error)
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	ConfigReader
	ConfigWriter
	DeliveryReader
	DeliveryWriter
	RetryClaimer
	Close(ctx context.Context) error
}
