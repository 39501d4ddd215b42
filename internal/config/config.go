// Package config provides application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// LINE messaging credentials.
	ChannelSecret      string `env:"LINE_CHANNEL_SECRET"`
	ChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`

	// Redis connection for session documents and distributed locks.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// CompletionThreshold is the point total at which a session completes.
	CompletionThreshold int `env:"COMPLETION_THRESHOLD" envDefault:"8"`

	// SessionTTL expires idle session documents. Zero keeps them forever.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0"`

	// LockTTL bounds how long a crashed handler can hold a user lock.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`

	// DistributedLock enables the Redis lock for multi-instance deployments.
	DistributedLock bool `env:"DISTRIBUTED_LOCK" envDefault:"false"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present, matching local development.
func Load() (*Config, error) {
	// Ignore a missing .env; the environment itself is authoritative.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.ChannelSecret == "" {
		return fmt.Errorf("LINE_CHANNEL_SECRET is required")
	}
	if c.ChannelAccessToken == "" {
		return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN is required")
	}
	if c.CompletionThreshold <= 0 {
		return fmt.Errorf("COMPLETION_THRESHOLD must be positive")
	}
	return nil
}
