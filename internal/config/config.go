// Package config provides configuration loading and validation for the
// swipe engine service. Fail-fast: an invalid value aborts startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime configuration. Values come from environment
// variables (a .env file is loaded by the CLI entry point).
type Config struct {
	Port        int    `validate:"gte=1,lte=65535"`
	DatabaseURL string `validate:"required"`
	RedisURL    string // optional; feed caching is disabled when empty

	DailySwipeLimit    int           `validate:"gte=1"`
	FeedPageSize       int           `validate:"gte=1,lte=100"`
	ReplenishThreshold int           `validate:"gte=0"`
	FeedCacheTTL       time.Duration `validate:"gte=0"`

	LogJSON bool
	Debug   bool
}

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort            = 8080
	DefaultDailySwipeLimit = 40
)

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               DefaultPort,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		DailySwipeLimit:    DefaultDailySwipeLimit,
		FeedPageSize:       10,
		ReplenishThreshold: 3,
		FeedCacheTTL:       10 * time.Minute,
		LogJSON:            os.Getenv("LOG_JSON") == "true",
		Debug:              os.Getenv("DEBUG") == "true",
	}

	if err := overrideInt("PORT", &cfg.Port); err != nil {
		return nil, err
	}
	if err := overrideInt("DAILY_SWIPE_LIMIT", &cfg.DailySwipeLimit); err != nil {
		return nil, err
	}
	if err := overrideInt("FEED_PAGE_SIZE", &cfg.FeedPageSize); err != nil {
		return nil, err
	}
	if err := overrideInt("REPLENISH_THRESHOLD", &cfg.ReplenishThreshold); err != nil {
		return nil, err
	}
	if s := os.Getenv("FEED_CACHE_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("FEED_CACHE_TTL must be a duration, got %q: %w", s, err)
		}
		cfg.FeedCacheTTL = d
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func overrideInt(name string, dst *int) error {
	s := os.Getenv(name)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	*dst = v
	return nil
}
