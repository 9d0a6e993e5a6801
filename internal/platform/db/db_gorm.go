// Package db opens the relational database used for accounts, sessions and the SQL watchlist store.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config holds PostgreSQL connection settings.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL instance; when set the unix socket is used instead of Host/Port
}

// Opener opens a gorm connection for a DSN. Swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads DB_* variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN renders cfg as a libpq key/value DSN.
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// PostgresOpener is the production Opener.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps calling open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", interval)
		time.Sleep(interval)
	}
}

// OpenDB connects with the production opener and, when RUN_MIGRATIONS=true, migrates models.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, retryInterval, PostgresOpener)
	if err != nil {
		return nil, err
	}
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db, models...); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate runs AutoMigrate for models.
func Migrate(db *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
