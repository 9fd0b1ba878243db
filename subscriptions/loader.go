package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tracklet/tracklet/webhook"
)

/* Loader imports webhook subscriptions from a webhooks.yaml file at
 * startup, so endpoints can be provisioned without going through the API.
 * Seeding is idempotent: a subscription whose name already exists is
 * left untouched.
 */

// File represents the structure of webhooks.yaml
type File struct {
	Webhooks []SubscriptionConfig `yaml:"webhooks"`
}

// SubscriptionConfig represents a single webhook in the YAML file
type SubscriptionConfig struct {
	Name          string   `yaml:"name"`
	URL           string   `yaml:"url"`
	Secret        string   `yaml:"secret"`
	Events        []string `yaml:"events"`
	Active        *bool    `yaml:"active"`         // default: true
	RetryAttempts int      `yaml:"retry_attempts"` // default: 3
	TimeoutMS     int      `yaml:"timeout_ms"`     // default: 30000
}

// Loader holds the parsed subscriptions
type Loader struct {
	configs []webhook.Config
}

// NewLoader creates a new subscription loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the webhooks.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading webhooks file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing webhooks YAML: %w", err)
	}

	for _, sc := range file.Webhooks {
		events := make([]webhook.Event, 0, len(sc.Events))
		for _, e := range sc.Events {
			events = append(events, webhook.Event(e))
		}

		retryAttempts := sc.RetryAttempts
		if retryAttempts == 0 {
			retryAttempts = webhook.DefaultRetryAttempts
		}
		timeoutMS := sc.TimeoutMS
		if timeoutMS == 0 {
			timeoutMS = webhook.DefaultTimeoutMS
		}
		active := true
		if sc.Active != nil {
			active = *sc.Active
		}

		cfg := webhook.Config{
			Name:          sc.Name,
			URL:           sc.URL,
			Secret:        sc.Secret,
			Events:        events,
			Active:        active,
			RetryAttempts: retryAttempts,
			TimeoutMS:     timeoutMS,
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validating webhook %q: %w", sc.Name, err)
		}

		l.configs = append(l.configs, cfg)
	}
	return nil
}

// List returns all loaded subscriptions
func (l *Loader) List() []webhook.Config {
	return l.configs
}

// Seed creates the loaded subscriptions that don't exist yet
func (l *Loader) Seed(ctx context.Context, svc webhook.UseCase) error {
	for _, cfg := range l.configs {
		if _, err := svc.Create(ctx, cfg); err != nil {
			if errors.Is(err, webhook.ErrDuplicateName) {
				continue
			}
			return fmt.Errorf("seeding webhook %q: %w", cfg.Name, err)
		}
	}
	return nil
}
