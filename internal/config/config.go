package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "carrental.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultRefreshTTL    = "720h"
	defaultStatsCacheTTL = "30s"
	defaultOutboxEvery   = "5s"
)

type Config struct {
	AppEnv      string `yaml:"app_env" validate:"required"`
	HTTPAddr    string `yaml:"http_addr" validate:"required"`
	DatabaseURL string `yaml:"database_url" validate:"required"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`

	JWT struct {
		Secret string        `yaml:"secret" validate:"required,min=8"`
		TTL    time.Duration `yaml:"ttl" validate:"gt=0"`

		RefreshTTL    time.Duration `yaml:"refresh_ttl" validate:"gt=0"`
		RefreshPepper string        `yaml:"refresh_pepper"`
	} `yaml:"jwt"`

	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" validate:"gte=0"`
		StatsTTL time.Duration `yaml:"stats_ttl" validate:"gt=0"`
	} `yaml:"redis"`

	Outbox struct {
		RabbitMQURL string        `yaml:"rabbitmq_url"`
		Queue       string        `yaml:"queue" validate:"required"`
		Interval    time.Duration `yaml:"interval" validate:"gt=0"`
		BatchSize   int           `yaml:"batch_size" validate:"gt=0"`
		MaxRetry    int           `yaml:"max_retry" validate:"gt=0"`
	} `yaml:"outbox"`

	RateLimit struct {
		RPS   float64 `yaml:"rps" validate:"gte=0"`
		Burst int     `yaml:"burst" validate:"gte=0"`
	} `yaml:"rate_limit"`

	MetricsEnabled bool     `yaml:"metrics_enabled"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE
// (if set), then environment overrides, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		AppEnv:         "dev",
		HTTPAddr:       defaultHTTPAddr,
		DatabaseURL:    defaultDatabaseURL,
		LogLevel:       "info",
		MetricsEnabled: true,
	}
	cfg.JWT.Secret = defaultJWTSecret
	cfg.JWT.TTL, _ = time.ParseDuration(defaultJWTTTL)
	cfg.JWT.RefreshTTL, _ = time.ParseDuration(defaultRefreshTTL)
	cfg.Redis.StatsTTL, _ = time.ParseDuration(defaultStatsCacheTTL)
	cfg.Outbox.Queue = "reservation.events"
	cfg.Outbox.Interval, _ = time.ParseDuration(defaultOutboxEvery)
	cfg.Outbox.BatchSize = 50
	cfg.Outbox.MaxRetry = 5
	cfg.RateLimit.RPS = 5
	cfg.RateLimit.Burst = 10
	return cfg
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	// ${ENV_VAR} placeholders are expanded before parsing.
	data = []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.AppEnv, "APP_ENV")
	cfg.AppEnv = strings.ToLower(cfg.AppEnv)
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.RefreshPepper, "REFRESH_TOKEN_PEPPER")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Outbox.RabbitMQURL, "RABBITMQ_URL")
	setString(&cfg.Outbox.Queue, "OUTBOX_QUEUE")

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}

	var errs []error
	errs = append(errs,
		setDuration(&cfg.JWT.TTL, "JWT_TTL"),
		setDuration(&cfg.JWT.RefreshTTL, "JWT_REFRESH_TTL"),
		setDuration(&cfg.Redis.StatsTTL, "STATS_CACHE_TTL"),
		setDuration(&cfg.Outbox.Interval, "OUTBOX_INTERVAL"),
		setInt(&cfg.Redis.DB, "REDIS_DB"),
		setInt(&cfg.Outbox.BatchSize, "OUTBOX_BATCH"),
		setInt(&cfg.Outbox.MaxRetry, "OUTBOX_MAX_RETRY"),
		setInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST"),
		setFloat(&cfg.RateLimit.RPS, "RATE_LIMIT_RPS"),
		setBool(&cfg.MetricsEnabled, "METRICS_ENABLED"),
	)
	return errors.Join(errs...)
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.IsProd() && strings.TrimSpace(cfg.JWT.Secret) == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name string) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, name string) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, name string) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, name string) error {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if v == "" {
		return nil
	}
	*dst = v == "1" || v == "true" || v == "yes" || v == "on"
	return nil
}
