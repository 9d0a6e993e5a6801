package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	wladapters "signalist_backend/internal/feature/watchlist/adapters"
	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/platform/session"
)

func TestNewSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, ok := NewSessionRepository(rdb, nil).(*session.SessionRedis)
	assert.True(t, ok, "redis is preferred when available")

	_, ok = NewSessionRepository(nil, &gorm.DB{}).(*session.SessionRedis)
	assert.False(t, ok)
}

func TestNewWatchlistRepository_FallsBackToSQL(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&wladapters.WatchlistModel{}))

	repo, err := NewWatchlistRepository(context.Background(), nil, db)
	require.NoError(t, err)

	created, err := repo.Add(context.Background(), &entity.WatchlistEntry{UserID: "u-1", Symbol: "AAPL", Company: "Apple", AddedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestDurationFromEnv(t *testing.T) {
	t.Setenv("QUOTE_CACHE_TTL", "30s")
	t.Setenv("PROFILE_CACHE_TTL", "soon")

	assert.Equal(t, 30*time.Second, durationFromEnv("QUOTE_CACHE_TTL"))
	assert.Zero(t, durationFromEnv("PROFILE_CACHE_TTL"))
	assert.Zero(t, durationFromEnv("UNSET_CACHE_TTL"))
}
