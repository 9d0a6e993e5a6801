package usecase

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	mddomain "signalist_backend/internal/feature/marketdata/domain"
	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// DefaultFetchConcurrency bounds how many symbols are enriched at once.
const DefaultFetchConcurrency = 8

// enrichmentUsecase joins stored entries with live market data.
type enrichmentUsecase struct {
	repo        WatchlistRepository
	market      MarketDataGateway
	concurrency int
}

// NewEnrichmentUsecase creates an enrichmentUsecase. concurrency <= 0 uses DefaultFetchConcurrency.
func NewEnrichmentUsecase(repo WatchlistRepository, market MarketDataGateway, concurrency int) *enrichmentUsecase {
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	return &enrichmentUsecase{repo: repo, market: market, concurrency: concurrency}
}

// GetUserWatchlist returns the user's entries, newest first, each with live or
// unavailable market data. A failing symbol never drops or fails the others.
// Anonymous callers and storage errors get an empty slice.
func (u *enrichmentUsecase) GetUserWatchlist(ctx context.Context, userID string) []entity.EnrichedEntry {
	if userID == "" {
		return []entity.EnrichedEntry{}
	}
	entries, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to load watchlist", "user_id", userID, "error", err)
		return []entity.EnrichedEntry{}
	}
	if len(entries) == 0 {
		return []entity.EnrichedEntry{}
	}

	// results[i] belongs to entries[i], so completion order does not matter
	results := make([]entity.EnrichedEntry, len(entries))
	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, e := range entries {
		g.Go(func() error {
			results[i] = entity.EnrichedEntry{WatchlistEntry: e, Market: u.fetch(ctx, e.Symbol)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetch loads quote and profile in parallel. Either failing makes the symbol unavailable.
func (u *enrichmentUsecase) fetch(ctx context.Context, symbol string) entity.MarketData {
	var (
		quote   *mdentity.Quote
		profile *mdentity.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = u.market.GetQuote(gctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = u.market.GetProfile(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		reason := entity.ReasonUpstreamError
		if errors.Is(err, mddomain.ErrSymbolNotFound) {
			reason = entity.ReasonSymbolNotFound
		}
		slog.Warn("market data unavailable", "symbol", symbol, "reason", reason, "error", err)
		return entity.UnavailableMarketData(reason)
	}
	if quote == nil || profile == nil {
		return entity.UnavailableMarketData(entity.ReasonUpstreamError)
	}
	return entity.LiveMarketData(quote.CurrentPrice, quote.ChangePercent, profile.MarketCap)
}
