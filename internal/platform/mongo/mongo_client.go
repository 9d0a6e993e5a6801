// Package mongo opens the MongoDB database backing the document watchlist store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrNotConfigured is returned when MONGODB_URI is empty.
var ErrNotConfigured = errors.New("mongodb not configured")

const defaultDatabase = "signalist"

// Config holds MongoDB connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// LoadConfig reads MONGODB_URI and MONGODB_DATABASE.
func LoadConfig() Config {
	cfg := Config{
		URI:            os.Getenv("MONGODB_URI"),
		Database:       os.Getenv("MONGODB_DATABASE"),
		ConnectTimeout: 10 * time.Second,
	}
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	return cfg
}

// Connect dials the cluster and verifies the primary is reachable.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, ErrNotConfigured
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("MongoDB connection successful", "database", cfg.Database)
	return client, nil
}

// Ping checks the primary. Used by the readiness endpoint.
func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}
