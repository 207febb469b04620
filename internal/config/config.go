package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config carries process-level settings plus the system-wide policy
// defaults. Organizations may override the policy values through the
// orgpolicy module; these are the fallbacks when no override exists.
type Config struct {
	// Server
	Port         string `env:"PORT" envDefault:"3000"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	JWTSecret    string `env:"JWT_SECRET"`
	RateLimitRPS int    `env:"RATE_LIMIT_RPS" envDefault:"20"`

	// PostgreSQL
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"geoshift"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// Kafka
	KafkaBroker string `env:"KAFKA_BROKER"`

	// Worker
	OutboxPollSeconds     int `env:"OUTBOX_POLL_SECONDS" envDefault:"3"`
	StaleSweepMinutes     int `env:"STALE_SWEEP_MINUTES" envDefault:"15"`

	// Policy defaults (per-organization overrides live in the database)
	StaleThresholdHours      int    `env:"STALE_THRESHOLD_HOURS" envDefault:"16"`
	BreakThresholdHours      int    `env:"BREAK_THRESHOLD_HOURS" envDefault:"6"`
	BreakMinutes             int    `env:"BREAK_MINUTES" envDefault:"30"`
	MaxAccuracyMeters        float64 `env:"MAX_ACCURACY_METERS" envDefault:"100"`
	MaxSampleAgeMilliseconds int64  `env:"MAX_SAMPLE_AGE_MS" envDefault:"120000"`
	ReasonMinLength          int    `env:"REASON_MIN_LENGTH" envDefault:"10"`
	DefaultTimezone          string `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
