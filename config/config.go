package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Google Places API
const GOOGLE_PLACES_DETAILS_FIELD_MASK = "id,displayName,formattedAddress,types,rating,priceLevel,location,currentOpeningHours.openNow,reviews,userRatingCount,reviewSummary"

// Search pipeline
const SEARCH_MIN_QUERY_LENGTH = 2
const DAILY_DETAILS_LIMIT = 10

// Client state
// 24 hours: the quota record has a one day effective lifetime.
const QUOTA_RECORD_TTL_HOURS = 24
const CONTROLLER_IDLE_TTL_MINUTES = 30
const CONTROLLER_JANITOR_SCHEDULE_MINUTES = 5
const STATE_SWEEP_SCHEDULE_MINUTES = 10

// Store types
const STATE_STORE_MEMORY = "memory"
const STATE_STORE_REDIS = "redis"

// IncludedPrimaryTypes restricts autocomplete suggestions to these categories.
var IncludedPrimaryTypes = []string{"restaurant", "cafe", "bar", "hotel", "store"}

// ExampleSearches helps users get started.
var ExampleSearches = []string{"restaurant", "coffee shop", "hotel"}

// Config holds runtime configuration read from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPAddress      string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	InboundRateLimit float64       `env:"INBOUND_RATE_LIMIT_QPS" envDefault:"50"`

	// Google Places
	GoogleAPIKey       string        `env:"GOOGLE_API_KEY"`
	GooglePlacesURL    string        `env:"GOOGLE_PLACES_URL" envDefault:"https://places.googleapis.com/v1"`
	LanguageCode       string        `env:"LANGUAGE_CODE" envDefault:"en"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	DebounceInterval   time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`
	DailyDetailsLimit  int           `env:"DAILY_DETAILS_LIMIT" envDefault:"10"`
	BreakerTimeout     time.Duration `env:"PLACES_BREAKER_TIMEOUT" envDefault:"30s"`
	BreakerMinRequests uint32        `env:"PLACES_BREAKER_MIN_REQUESTS" envDefault:"5"`

	// Summary webhook
	SummaryWebhookURL string `env:"SUMMARY_WEBHOOK_URL"`

	// Client state store (memory or redis)
	StateStore    string `env:"STATE_STORE" envDefault:"memory"`
	RedisAddress  string `env:"REDIS_ADDRESS" envDefault:"redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads an optional .env file and then parses environment variables.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PlacesConfigured reports whether a real Google Places key is available.
func (c *Config) PlacesConfigured() bool {
	return c.GoogleAPIKey != "" && c.GoogleAPIKey != "YOUR_API_KEY_HERE"
}

// SummaryWebhookConfigured reports whether the AI summary webhook is set.
func (c *Config) SummaryWebhookConfigured() bool {
	return c.SummaryWebhookURL != ""
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.DailyDetailsLimit < 1 {
		return fmt.Errorf("invalid daily details limit: %d", c.DailyDetailsLimit)
	}
	if c.DebounceInterval <= 0 {
		return fmt.Errorf("invalid debounce interval: %s", c.DebounceInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid http timeout: %s", c.HTTPTimeout)
	}
	switch c.StateStore {
	case STATE_STORE_MEMORY, STATE_STORE_REDIS:
	default:
		return fmt.Errorf("unsupported state store: %s", c.StateStore)
	}
	return nil
}
