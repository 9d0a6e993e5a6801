package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mddomain "signalist_backend/internal/feature/marketdata/domain"
	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// SymbolLister resolves a user's watched symbols from an email address.
type SymbolLister interface {
	ListSymbolsByEmail(ctx context.Context, email string) []string
}

// QuoteGateway fetches quotes.
type QuoteGateway interface {
	GetQuote(ctx context.Context, symbol string) (*mdentity.Quote, error)
}

// Waiter throttles outbound calls.
type Waiter interface {
	Wait(ctx context.Context) error
}

// DigestLine is one symbol of a user's digest.
type DigestLine struct {
	Symbol string
	Market entity.MarketData
}

// digestUsecase builds per-user quote digests for the notification job.
// Quotes are fetched one at a time through the limiter.
type digestUsecase struct {
	symbols SymbolLister
	quotes  QuoteGateway
	limiter Waiter
}

// NewDigestUsecase creates a digestUsecase.
func NewDigestUsecase(symbols SymbolLister, quotes QuoteGateway, limiter Waiter) *digestUsecase {
	return &digestUsecase{symbols: symbols, quotes: quotes, limiter: limiter}
}

// Build returns one line per watched symbol. A failing quote marks that line unavailable;
// only cancellation of ctx aborts the digest.
func (u *digestUsecase) Build(ctx context.Context, email string) ([]DigestLine, error) {
	symbols := u.symbols.ListSymbolsByEmail(ctx, email)
	lines := make([]DigestLine, 0, len(symbols))
	for _, sym := range symbols {
		if err := u.limiter.Wait(ctx); err != nil {
			return lines, fmt.Errorf("digest for %s: %w", email, err)
		}
		q, err := u.quotes.GetQuote(ctx, sym)
		if err != nil || q == nil {
			reason := entity.ReasonUpstreamError
			if errors.Is(err, mddomain.ErrSymbolNotFound) {
				reason = entity.ReasonSymbolNotFound
			}
			slog.Warn("digest quote unavailable", "symbol", sym, "error", err)
			lines = append(lines, DigestLine{Symbol: sym, Market: entity.UnavailableMarketData(reason)})
			continue
		}
		lines = append(lines, DigestLine{Symbol: sym, Market: entity.LiveMarketData(q.CurrentPrice, q.ChangePercent, 0)})
	}
	return lines, nil
}
