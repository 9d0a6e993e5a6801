package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	wladapters "signalist_backend/internal/feature/watchlist/adapters"
	"signalist_backend/internal/feature/watchlist/usecase"
)

// NewWatchlistRepository returns the MongoDB store when mdb is set, otherwise the SQL store.
// The Mongo indexes are created here because the unique one backs idempotent adds.
func NewWatchlistRepository(ctx context.Context, mdb *mongo.Database, db *gorm.DB) (usecase.WatchlistRepository, error) {
	if mdb == nil {
		return wladapters.NewWatchlistGorm(db), nil
	}
	repo := wladapters.NewWatchlistMongo(mdb)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("watchlist indexes: %w", err)
	}
	return repo, nil
}
