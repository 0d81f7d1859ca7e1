// Package config loads all runtime configuration from the environment.
// Required values are startup-fatal when missing; nothing reads the
// environment after Load returns.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string `env:"JWT_SECRET, required"`
	TokenTTL  int    `env:"TOKEN_TTL_MINUTES, default=30"`

	Mongo        MongoConfig
	Redis        RedisConfig
	ModelService ModelServiceConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stress_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ModelServiceConfig locates the external prediction service. The URL has no
// default: a deployment without it must fail at startup, not per request.
type ModelServiceConfig struct {
	URL     string `env:"MODEL_SERVICE_URL, required"`
	Timeout int    `env:"MODEL_SERVICE_TIMEOUT_SECONDS, default=5"`
}

// TokenTTLDuration returns the configured token lifetime.
func (c *Config) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Minute
}

// ModelServiceTimeout returns the bounded timeout for prediction calls.
func (c *Config) ModelServiceTimeout() time.Duration {
	return time.Duration(c.ModelService.Timeout) * time.Second
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
