// Package di provides dependency injection factories for creating application components.
package di

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"signalist_backend/internal/platform/cache"
	"signalist_backend/internal/platform/externalapi/finnhub"
	infrahttp "signalist_backend/internal/platform/http"
)

// NewFinnhubClient creates a Finnhub client with its own HTTP client.
func NewFinnhubClient() *finnhub.Client {
	cfg := finnhub.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return finnhub.NewClient(cfg, httpClient)
}

// NewMarketDataGateway wraps client with the Redis cache. A nil rdb disables caching.
// QUOTE_CACHE_TTL and PROFILE_CACHE_TTL override the default TTLs.
func NewMarketDataGateway(rdb *redis.Client, client *finnhub.Client) *cache.CachingMarketRepository {
	return cache.NewCachingMarketRepository(rdb, client,
		durationFromEnv("QUOTE_CACHE_TTL"), durationFromEnv("PROFILE_CACHE_TTL"), "marketdata")
}

// durationFromEnv returns 0 when key is unset or invalid; callers apply their own default.
func durationFromEnv(key string) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return 0
	}
	return d
}
