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

	Quote   QuoteConfig
	Redis   RedisConfig
	Tracing TracingConfig
}

// QuoteConfig locates the external pricing oracle.
type QuoteConfig struct {
	Addr    string        `env:"QUOTE_ADDR,    default=http://quote:8090"`
	Timeout time.Duration `env:"QUOTE_TIMEOUT, default=5s"`
}

// RedisConfig backs ship-order idempotency. Leave REDIS_ADDR unset to disable it.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=1h"`
}

type TracingConfig struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME, default=shipping"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`
}

// IsDevelopment reports whether human-friendly console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
