// Package finnhub provides a client for the Finnhub market data API.
package finnhub

import (
	"os"
	"time"
)

const (
	defaultBaseURL = "https://finnhub.io/api/v1"
	defaultTimeout = 10 * time.Second
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // sent as the token query parameter
	BaseURL string        // e.g. "https://finnhub.io/api/v1"
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("FINNHUB_API_KEY"),
		BaseURL: os.Getenv("FINNHUB_BASE_URL"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v := os.Getenv("FINNHUB_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
