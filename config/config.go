package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	WebhookQueueSize    int    `mapstructure:"WEBHOOK_QUEUE_SIZE"`
	WebhookWorkers      int    `mapstructure:"WEBHOOK_WORKERS"`
	WebhookSweepSeconds int    `mapstructure:"WEBHOOK_SWEEP_SECONDS"`
	WebhooksFile        string `mapstructure:"WEBHOOKS_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		// env-only configuration is valid, only a malformed file is fatal
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// GetPort returns the HTTP port, default 8080
func (c *Config) GetPort() string {
	if c.Port == "" {
		return "8080"
	}
	return c.Port
}

// GetRedisAddr returns the Redis address, default localhost:6379
func (c *Config) GetRedisAddr() string {
	if c.RedisAddr == "" {
		return "localhost:6379"
	}
	return c.RedisAddr
}

// GetWebhookQueueSize returns the delivery queue buffer size, default 256
func (c *Config) GetWebhookQueueSize() int {
	if c.WebhookQueueSize <= 0 {
		return 256
	}
	return c.WebhookQueueSize
}

// GetWebhookWorkers returns the delivery worker count, default 4
func (c *Config) GetWebhookWorkers() int {
	if c.WebhookWorkers <= 0 {
		return 4
	}
	return c.WebhookWorkers
}

// GetWebhookSweepInterval returns the retry sweep interval, default 30s
func (c *Config) GetWebhookSweepInterval() time.Duration {
	if c.WebhookSweepSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.WebhookSweepSeconds) * time.Second
}
