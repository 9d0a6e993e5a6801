package usecase

import (
	"context"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository abstracts the Symbol Store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Add inserts the entry unless (UserID, Symbol) already exists. created is false for the
	// existing case, including when a concurrent add wins the race.
	Add(ctx context.Context, entry *entity.WatchlistEntry) (created bool, err error)

	// Remove deletes the (userID, symbol) entry. Removing an absent entry is not an error.
	Remove(ctx context.Context, userID, symbol string) error

	// Exists reports whether (userID, symbol) is stored.
	Exists(ctx context.Context, userID, symbol string) (bool, error)

	// ListByUser returns the user's entries, most recently added first.
	ListByUser(ctx context.Context, userID string) ([]entity.WatchlistEntry, error)

	// ListSymbols returns the user's symbols, most recently added first.
	ListSymbols(ctx context.Context, userID string) ([]string, error)
}

// UserDirectory resolves accounts for callers that only know an email address.
type UserDirectory interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
}

// MarketDataGateway is the external quote/profile provider.
type MarketDataGateway interface {
	GetQuote(ctx context.Context, symbol string) (*mdentity.Quote, error)
	GetProfile(ctx context.Context, symbol string) (*mdentity.Profile, error)
}
