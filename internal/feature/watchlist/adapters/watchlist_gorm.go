package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/feature/watchlist/usecase"
)

// watchlistGorm is the SQL implementation of WatchlistRepository.
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistGorm creates a new instance of watchlistGorm.
func NewWatchlistGorm(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Add runs INSERT ... ON CONFLICT (user_id, symbol) DO NOTHING, so a concurrent
// duplicate add affects zero rows instead of failing.
func (r *watchlistGorm) Add(ctx context.Context, e *entity.WatchlistEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
			DoNothing: true,
		}).
		Create(watchlistModelFromEntity(e))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Remove deletes the entry if present.
func (r *watchlistGorm) Remove(ctx context.Context, userID, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&WatchlistModel{}).Error
}

// Exists reports whether the entry is stored.
func (r *watchlistGorm) Exists(ctx context.Context, userID, symbol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WatchlistModel{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's entries, newest first.
func (r *watchlistGorm) ListByUser(ctx context.Context, userID string) ([]entity.WatchlistEntry, error) {
	var models []WatchlistModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]entity.WatchlistEntry, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}

// ListSymbols returns the user's symbols, newest first.
func (r *watchlistGorm) ListSymbols(ctx context.Context, userID string) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&WatchlistModel{}).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Pluck("symbol", &symbols).Error
	return symbols, err
}
