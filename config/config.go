package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Economy configuration
	StartingBalance int64

	// Auction configuration
	SweepInterval  time.Duration // How often the expiry sweeper runs
	MaxBidAttempts int           // Bound on optimistic retries for a racing bid

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		StartingBalance: 100000,
		SweepInterval:   5 * time.Second,
		MaxBidAttempts:  3,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}
	if interval := os.Getenv("SWEEP_INTERVAL"); interval != "" {
		if parsedInterval, err := time.ParseDuration(interval); err == nil && parsedInterval > 0 {
			config.SweepInterval = parsedInterval
		}
	}
	if attempts := os.Getenv("MAX_BID_ATTEMPTS"); attempts != "" {
		if parsedAttempts, err := strconv.Atoi(attempts); err == nil && parsedAttempts > 0 {
			config.MaxBidAttempts = parsedAttempts
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
