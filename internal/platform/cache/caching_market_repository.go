package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/usecase"
)

const (
	DefaultQuoteTTL   = 60 * time.Second
	DefaultProfileTTL = time.Hour

	// fetchTimeout bounds a shared upstream fetch, which no single caller can cancel.
	fetchTimeout = 10 * time.Second
)

// CachingMarketRepository decorates a MarketDataGateway with Redis caching.
// Only successful lookups are cached, so an upstream failure is retried on the next call.
// Concurrent misses for the same key share one upstream request.
type CachingMarketRepository struct {
	inner      usecase.MarketDataGateway
	rdb        *redis.Client
	quoteTTL   time.Duration
	profileTTL time.Duration
	namespace  string
	group      singleflight.Group
}

var _ usecase.MarketDataGateway = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository wraps inner. Non-positive TTLs fall back to 60s for quotes and
// 1h for profiles; an empty namespace becomes "marketdata".
func NewCachingMarketRepository(rdb *redis.Client, inner usecase.MarketDataGateway, quoteTTL, profileTTL time.Duration, namespace string) *CachingMarketRepository {
	if quoteTTL <= 0 {
		quoteTTL = DefaultQuoteTTL
	}
	if profileTTL <= 0 {
		profileTTL = DefaultProfileTTL
	}
	if namespace == "" {
		namespace = "marketdata"
	}
	return &CachingMarketRepository{
		inner:      inner,
		rdb:        rdb,
		quoteTTL:   quoteTTL,
		profileTTL: profileTTL,
		namespace:  namespace,
	}
}

// GetQuote returns a cached quote or fetches it from the inner gateway.
func (c *CachingMarketRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}
	return cached(ctx, c, c.cacheKey("quote", symbol), c.quoteTTL, func(ctx context.Context) (*entity.Quote, error) {
		return c.inner.GetQuote(ctx, symbol)
	})
}

// GetProfile returns a cached profile or fetches it from the inner gateway.
func (c *CachingMarketRepository) GetProfile(ctx context.Context, symbol string) (*entity.Profile, error) {
	if c.rdb == nil {
		return c.inner.GetProfile(ctx, symbol)
	}
	return cached(ctx, c, c.cacheKey("profile", symbol), c.profileTTL, func(ctx context.Context) (*entity.Profile, error) {
		return c.inner.GetProfile(ctx, symbol)
	})
}

func cached[T any](ctx context.Context, c *CachingMarketRepository, key string, ttl time.Duration, load func(ctx context.Context) (*T, error)) (*T, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fetch upstream, one request per key.
	// The shared fetch is detached from the caller that started it; each caller only stops waiting.
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		out, err := load(fetchCtx)
		if err != nil {
			return nil, err
		}
		// 3) Store in cache (best effort)
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(fetchCtx, key, b, ttl).Err()
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

// cacheKey generates a cache key such as "marketdata:quote:AAPL".
func (c *CachingMarketRepository) cacheKey(kind, symbol string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, kind, safe(strings.ToUpper(strings.TrimSpace(symbol))))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
