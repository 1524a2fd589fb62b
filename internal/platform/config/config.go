package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains the full server configuration, parsed from environment
// variables so main stays lean.
type Config struct {
	Addr     string   `env:"SOULMATE_ADDR" envDefault:":8080"`
	JWT      JWT      `envPrefix:"JWT_"`
	Database Database `envPrefix:"DATABASE_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	Contact  Contact  `envPrefix:"CONTACT_"`
}

// JWT contains bearer-token verification parameters.
type JWT struct {
	SigningKey string `env:"SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string `env:"ISSUER" envDefault:"soulmate"`
	Audience   string `env:"AUDIENCE" envDefault:"soulmate-api"`
}

// Database contains PostgreSQL connection parameters. An empty DSN selects
// the in-memory stores (development and tests).
type Database struct {
	DSN string `env:"DSN"`
}

// Redis configures the optional counters cache. Empty URL disables it.
type Redis struct {
	URL          string `env:"URL"`
	PoolSize     int    `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int    `env:"MIN_IDLE_CONNS" envDefault:"2"`
}

// Kafka configures the optional audit event publisher. Empty brokers keep
// audit events in memory.
type Kafka struct {
	Brokers    []string `env:"BROKERS" envSeparator:","`
	AuditTopic string   `env:"AUDIT_TOPIC" envDefault:"soulmate.audit"`
}

// Payment holds the payment-gateway collaborator credentials.
type Payment struct {
	StripeKey string `env:"GATEWAY_KEY"`
	Currency  string `env:"CURRENCY" envDefault:"usd"`
}

// Contact holds disclosure-workflow tunables.
type Contact struct {
	// RequestPrice is the flat fee charged when a contact request is created,
	// in whole currency units.
	RequestPrice int64 `env:"REQUEST_PRICE" envDefault:"5"`
}

// FromEnv parses the configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
