package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	inframongo "signalist_backend/internal/platform/mongo"
	infraredis "signalist_backend/internal/platform/redis"
)

// OpenRedis returns nil when Redis is not configured or unreachable; the app then runs without cache.
func OpenRedis() *redis.Client {
	rdb, err := infraredis.NewRedisClient(infraredis.LoadConfig())
	if err != nil {
		if errors.Is(err, infraredis.ErrNotConfigured) {
			slog.Info("Redis not configured, running without cache")
		} else {
			slog.Warn("Redis unavailable, running without cache", "error", err)
		}
		return nil
	}
	return rdb
}

// OpenMongo returns nil, nil when MONGODB_URI is unset. Unlike Redis, a configured but
// unreachable MongoDB is an error because it holds the watchlists.
func OpenMongo(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	cfg := inframongo.LoadConfig()
	client, err := inframongo.Connect(ctx, cfg)
	if errors.Is(err, inframongo.ErrNotConfigured) {
		slog.Info("MongoDB not configured, watchlists use SQL storage")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return client, client.Database(cfg.Database), nil
}
