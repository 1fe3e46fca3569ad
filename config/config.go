package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	// Server Configuration
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig
	Environment EnvironmentConfig
	InternalKey string `env:"INTERNAL_KEY"`

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig
	NATS     NATSConfig

	// Pipeline Configuration
	Alert    AlertConfig
	Dispatch DispatchConfig
	Webhook  WebhookConfig
	Plan     PlanConfig

	// Monitoring & Security Configuration
	Discord   DiscordConfig
	Encrypter EncrypterConfig
}

type HTTPServerConfig struct {
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"APP_PORT" envDefault:"8080"`
	Mode string `env:"APP_MODE" envDefault:"release"`
}

type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"restock"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is optional: an empty host disables web push and the shared key lock.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// NATSConfig is optional: an empty URL disables the subscriber.
type NATSConfig struct {
	URL     string `env:"NATS_URL"`
	Subject string `env:"NATS_SUBJECT" envDefault:"availability.events"`
	Queue   string `env:"NATS_QUEUE" envDefault:"alert-coordinator"`
}

type AlertConfig struct {
	DedupWindow      time.Duration `env:"ALERT_DEDUP_WINDOW" envDefault:"15m"`
	RateLimitPerHour int           `env:"ALERT_RATE_LIMIT_PER_HOUR" envDefault:"50"`
	RateLimitWindow  time.Duration `env:"ALERT_RATE_LIMIT_WINDOW" envDefault:"60m"`
	SweepSpec        string        `env:"ALERT_SWEEP_SPEC" envDefault:"@every 1m"`
	SweepBatch       int           `env:"ALERT_SWEEP_BATCH" envDefault:"100"`
	LockTTL          time.Duration `env:"ALERT_LOCK_TTL" envDefault:"30s"`
}

type DispatchConfig struct {
	ChannelTimeout time.Duration `env:"DISPATCH_CHANNEL_TIMEOUT" envDefault:"10s"`
}

type WebhookConfig struct {
	MaxRetries        int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	BaseDelay         time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
	BackoffMultiplier float64       `env:"WEBHOOK_BACKOFF_MULTIPLIER" envDefault:"2"`
	Timeout           time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	PollInterval      time.Duration `env:"WEBHOOK_POLL_INTERVAL" envDefault:"1s"`
	SendRate          float64       `env:"WEBHOOK_SEND_RATE" envDefault:"20"`
	SendBurst         int           `env:"WEBHOOK_SEND_BURST" envDefault:"5"`
}

type PlanConfig struct {
	WeightFree      int      `env:"PLAN_WEIGHT_FREE" envDefault:"1"`
	WeightPro       int      `env:"PLAN_WEIGHT_PRO" envDefault:"5"`
	WeightPremium   int      `env:"PLAN_WEIGHT_PREMIUM" envDefault:"10"`
	PremiumMarkers  []string `env:"PLAN_PREMIUM_MARKERS" envDefault:"premium" envSeparator:","`
	ProMarkers      []string `env:"PLAN_PRO_MARKERS" envDefault:"pro" envSeparator:","`
	PremiumPriceIDs []string `env:"PLAN_PREMIUM_PRICE_IDS" envSeparator:","`
	ProPriceIDs     []string `env:"PLAN_PRO_PRICE_IDS" envSeparator:","`
}

type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

type EncrypterConfig struct {
	Key string `env:"ENCRYPTER_KEY"`
}

// IsProduction reports whether the service runs with production safeguards.
func (c *Config) IsProduction() bool {
	return c.Environment.Name == EnvProduction
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.InternalKey == "" {
		return errors.New("config: INTERNAL_KEY is required")
	}
	if n := len(c.Encrypter.Key); n != 16 && n != 24 && n != 32 {
		return errors.New("config: ENCRYPTER_KEY must be 16, 24 or 32 bytes")
	}
	if c.Alert.DedupWindow <= 0 || c.Alert.RateLimitWindow <= 0 {
		return errors.New("config: alert windows must be positive")
	}
	if c.Alert.RateLimitPerHour <= 0 {
		return errors.New("config: ALERT_RATE_LIMIT_PER_HOUR must be positive")
	}
	if c.Webhook.MaxRetries < 0 {
		return errors.New("config: WEBHOOK_MAX_RETRIES must be >= 0")
	}
	if c.Webhook.BackoffMultiplier < 1 {
		return errors.New("config: WEBHOOK_BACKOFF_MULTIPLIER must be >= 1")
	}
	if c.Plan.WeightFree <= 0 || c.Plan.WeightPro <= 0 || c.Plan.WeightPremium <= 0 {
		return errors.New("config: plan weights must be positive")
	}
	return nil
}
