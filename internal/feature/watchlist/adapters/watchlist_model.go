// Package adapters provides Symbol Store implementations for the watchlist feature.
package adapters

import (
	"time"

	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistModel is the GORM model for the watchlist_entries table.
type WatchlistModel struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  string    `gorm:"size:36;not null;uniqueIndex:idx_watchlist_user_symbol,priority:1;index:idx_watchlist_user_added,priority:1"`
	Symbol  string    `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol,priority:2"`
	Company string    `gorm:"size:255;not null"`
	AddedAt time.Time `gorm:"not null;index:idx_watchlist_user_added,priority:2"`
}

// TableName returns the table name for GORM.
func (WatchlistModel) TableName() string {
	return "watchlist_entries"
}

// ToEntity converts the GORM model to a domain entity.
func (m *WatchlistModel) ToEntity() entity.WatchlistEntry {
	return entity.WatchlistEntry{
		UserID:  m.UserID,
		Symbol:  m.Symbol,
		Company: m.Company,
		AddedAt: m.AddedAt,
	}
}

func watchlistModelFromEntity(e *entity.WatchlistEntry) *WatchlistModel {
	return &WatchlistModel{
		UserID:  e.UserID,
		Symbol:  e.Symbol,
		Company: e.Company,
		AddedAt: e.AddedAt,
	}
}
