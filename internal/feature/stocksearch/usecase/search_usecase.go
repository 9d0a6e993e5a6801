// Package usecase implements stock search with watchlist status.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/stocksearch/domain/entity"
	wlentity "signalist_backend/internal/feature/watchlist/domain/entity"
)

const (
	// PopularLimit is how many catalog symbols are shown for an empty query.
	PopularLimit = 10
	// MaxSearchResults caps vendor search hits.
	MaxSearchResults = 15

	profileConcurrency = 5
)

// SymbolCatalog lists the curated popular symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolCatalog interface {
	ListActive(ctx context.Context, limit int) ([]entity.Symbol, error)
}

// SymbolSearcher queries the vendor's symbol lookup.
type SymbolSearcher interface {
	SearchSymbols(ctx context.Context, query string) ([]mdentity.Stock, error)
}

// ProfileProvider resolves company profiles.
type ProfileProvider interface {
	GetProfile(ctx context.Context, symbol string) (*mdentity.Profile, error)
}

// WatchlistStatus stamps membership onto search hits.
type WatchlistStatus interface {
	EnrichWithStatus(ctx context.Context, userID string, stocks []wlentity.StockStatus) []wlentity.StockStatus
}

// SearchUsecase searches stocks and marks the ones already on the caller's watchlist.
type SearchUsecase struct {
	catalog   SymbolCatalog
	searcher  SymbolSearcher
	profiles  ProfileProvider
	watchlist WatchlistStatus
}

// NewSearchUsecase creates a SearchUsecase. catalog may be nil, in which case the built-in
// popular list is used.
func NewSearchUsecase(catalog SymbolCatalog, searcher SymbolSearcher, profiles ProfileProvider, watchlist WatchlistStatus) *SearchUsecase {
	return &SearchUsecase{catalog: catalog, searcher: searcher, profiles: profiles, watchlist: watchlist}
}

// Search returns vendor hits for query, or the popular list when query is blank.
// Only a failing vendor search is an error; membership problems degrade to "not in watchlist".
func (u *SearchUsecase) Search(ctx context.Context, userID, query string) ([]wlentity.StockStatus, error) {
	var (
		stocks []mdentity.Stock
		err    error
	)
	if q := strings.TrimSpace(query); q == "" {
		stocks = u.popular(ctx)
	} else {
		stocks, err = u.searcher.SearchSymbols(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", q, err)
		}
		if len(stocks) > MaxSearchResults {
			stocks = stocks[:MaxSearchResults]
		}
	}

	out := make([]wlentity.StockStatus, len(stocks))
	for i, s := range stocks {
		out[i] = wlentity.StockStatus{Stock: s}
	}
	return u.watchlist.EnrichWithStatus(ctx, userID, out), nil
}

// popular resolves the catalog through profiles; symbols without a profile are skipped.
func (u *SearchUsecase) popular(ctx context.Context) []mdentity.Stock {
	symbols := u.catalogSymbols(ctx)

	resolved := make([]*mdentity.Stock, len(symbols))
	var g errgroup.Group
	g.SetLimit(profileConcurrency)
	for i, s := range symbols {
		g.Go(func() error {
			p, err := u.profiles.GetProfile(ctx, s.Code)
			if err != nil || p == nil {
				slog.Debug("skipping popular symbol", "symbol", s.Code, "error", err)
				return nil
			}
			name := p.Name
			if name == "" {
				name = s.Name
			}
			resolved[i] = &mdentity.Stock{Symbol: s.Code, Name: name, Exchange: p.Exchange, Type: "Common Stock"}
			return nil
		})
	}
	_ = g.Wait()

	stocks := make([]mdentity.Stock, 0, len(symbols))
	for _, s := range resolved {
		if s != nil {
			stocks = append(stocks, *s)
		}
	}
	return stocks
}

func (u *SearchUsecase) catalogSymbols(ctx context.Context) []entity.Symbol {
	if u.catalog != nil {
		symbols, err := u.catalog.ListActive(ctx, PopularLimit)
		if err == nil && len(symbols) > 0 {
			return symbols
		}
		if err != nil {
			slog.Warn("popular symbol catalog unavailable, using defaults", "error", err)
		}
	}
	return entity.DefaultPopular[:PopularLimit]
}
