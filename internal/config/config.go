package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
	Logging   LoggingConfig
	Exchange  ExchangeConfig
}
type ServerConfig struct {
	Port            string `validate:"required,numeric"`
	Host            string
	Mode            string `validate:"oneof=debug release test"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}
type RateLimitConfig struct {
	Enabled bool
	Rate    string `validate:"required_if=Enabled true"` // ulule format, e.g. "100-M"
	Prefix  string
}
type CORSConfig struct {
	AllowedOrigins []string `validate:"min=1"`
}
type MetricsConfig struct {
	Enabled bool
	Path    string `validate:"startswith=/"`
}
type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}
type ExchangeConfig struct {
	// LegacyRouteMismatchStatus answers unmatched routes with 400 instead of 404.
	LegacyRouteMismatchStatus bool
}

// Addr returns host:port for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

var defaults = map[string]any{
	"PORT":                         "8080",
	"HOST":                         "0.0.0.0",
	"GIN_MODE":                     "debug",
	"READ_TIMEOUT":                 "10s",
	"WRITE_TIMEOUT":                "10s",
	"SHUTDOWN_TIMEOUT":             "5s",
	"REDIS_ADDR":                   "",
	"REDIS_PASSWORD":               "",
	"REDIS_DB":                     0,
	"RATE_LIMIT_ENABLED":           true,
	"RATE_LIMIT":                   "300-M",
	"RATE_LIMIT_PREFIX":            "exchange:ratelimit",
	"CORS_ALLOWED_ORIGINS":         "*",
	"METRICS_ENABLED":              true,
	"METRICS_PATH":                 "/metrics",
	"LOG_LEVEL":                    "info",
	"LOG_FORMAT":                   "json",
	"LEGACY_ROUTE_MISMATCH_STATUS": false,
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	// missing .env is fine, the environment and defaults still apply
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			Mode:            v.GetString("GIN_MODE"),
			ReadTimeout:     v.GetDuration("READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			Rate:    v.GetString("RATE_LIMIT"),
			Prefix:  v.GetString("RATE_LIMIT_PREFIX"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Exchange: ExchangeConfig{
			LegacyRouteMismatchStatus: v.GetBool("LEGACY_ROUTE_MISMATCH_STATUS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
