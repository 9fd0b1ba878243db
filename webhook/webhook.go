package webhook

import (
	"fmt"
	"net/url"
	"time"
)

/* Config represents a user-defined webhook subscription
 * Uses value semantics as it represents data, not behavior
 */
type Config struct {
	ID            string
	Name          string
	URL           string
	Secret        string // empty means unsigned delivery
	Events        []Event
	Active        bool
	RetryAttempts int
	TimeoutMS     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Timeout returns the per-attempt request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Subscribed reports whether the config listens for the given event kind
func (c Config) Subscribed(event Event) bool {
	for _, e := range c.Events {
		if e == event {
			return true
		}
	}
	return false
}

/* Validate checks the structural invariants of a config.
 * Name uniqueness is checked at the service layer since it needs
 * access to the other configs.
 */
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("parsing url: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("url scheme must be https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url host cannot be empty")
	}
	if len(c.Events) == 0 {
		return fmt.Errorf("events cannot be empty")
	}
	for _, e := range c.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("validating events: %w", err)
		}
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry_attempts must be positive, got %d", c.RetryAttempts)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMS)
	}
	return nil
}
