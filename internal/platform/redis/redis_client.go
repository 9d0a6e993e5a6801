// Package redis opens the Redis client used for the market-data cache, sessions and events.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when REDIS_HOST is empty.
var ErrNotConfigured = errors.New("redis not configured")

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadConfig reads REDIS_HOST, REDIS_PORT and REDIS_PASSWORD.
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	return cfg
}

// Addr returns host:port.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// NewRedisClient connects and pings. Callers treat any error as "run without Redis".
func NewRedisClient(cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
