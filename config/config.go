package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"

	"github.com/octabyte/saveat-admin/apiclient"
	"github.com/octabyte/saveat-admin/db/redis"
	"github.com/octabyte/saveat-admin/otel"
	"github.com/octabyte/saveat-admin/utils/logger"
)

// Config holds everything the console reads from the environment.
type Config struct {
	Environment string `env:"ENV" envDefault:"development" validate:"oneof=development production test"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"saveat-admin" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error fatal panic"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:"127.0.0.1:3000" validate:"required,hostname_port"`

	// Saveat REST backend
	APIURL     string        `env:"SAVEAT_API_URL" envDefault:"http://localhost:5000/api/v1" validate:"required,url"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"15s" validate:"gt=0"`

	// Durable credential area
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required,hostname_port"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0,lte=15"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"saveat-admin:"`

	NotificationsPollInterval time.Duration `env:"NOTIFICATIONS_POLL_INTERVAL" envDefault:"60s" validate:"gte=1s"`

	OtelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318" validate:"required_if=OtelEnabled true"`
	OtelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
}

// Load parses the environment into a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

func (c *Config) Logger() *logger.Config {
	return &logger.Config{Level: c.LogLevel, Env: c.Environment, ServiceName: c.ServiceName}
}

func (c *Config) Redis() redis.Config {
	return redis.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

func (c *Config) API() apiclient.Config {
	return apiclient.Config{BaseURL: c.APIURL, Timeout: c.APITimeout}
}

func (c *Config) Otel() otel.Config {
	return otel.Config{
		Enabled:     c.OtelEnabled,
		Endpoint:    c.OtelEndpoint,
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		SampleRate:  c.OtelSampleRate,
	}
}
