// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
)

// WatchlistEntry is one watched symbol owned by one user.
// (UserID, Symbol) is unique. Entries are created and deleted, never updated.
type WatchlistEntry struct {
	UserID  string
	Symbol  string // upper-case ticker
	Company string // display name captured when the entry was added
	AddedAt time.Time
}

// EnrichedEntry joins a stored entry with market data fetched at read time.
type EnrichedEntry struct {
	WatchlistEntry
	Market MarketData
}

// StockStatus is a search hit stamped with watchlist membership.
type StockStatus struct {
	mdentity.Stock
	IsInWatchlist bool
}
