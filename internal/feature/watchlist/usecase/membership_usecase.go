package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// membershipUsecase implements add / remove / membership checks against the Symbol Store.
// An empty userID means the caller is not authenticated.
// No method returns an error: storage failures are logged and mapped to a safe result.
type membershipUsecase struct {
	repo  WatchlistRepository
	users UserDirectory
	now   func() time.Time
}

// NewMembershipUsecase creates a membershipUsecase. users may be nil when email lookups are not needed.
func NewMembershipUsecase(repo WatchlistRepository, users UserDirectory) *membershipUsecase {
	return &membershipUsecase{repo: repo, users: users, now: time.Now}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Add stores symbol for the user. Adding an existing symbol succeeds without writing.
func (u *membershipUsecase) Add(ctx context.Context, userID, symbol, company string) Result {
	if userID == "" {
		return fail(ReasonUnauthenticated, ErrMsgNotAuth)
	}
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return fail(ReasonInvalid, ErrMsgSymbolNeeded)
	}
	company = strings.TrimSpace(company)
	if company == "" {
		company = symbol
	}

	created, err := u.repo.Add(ctx, &entity.WatchlistEntry{
		UserID:  userID,
		Symbol:  symbol,
		Company: company,
		AddedAt: u.now().UTC(),
	})
	if err != nil {
		slog.Error("failed to add to watchlist", "user_id", userID, "symbol", symbol, "error", err)
		return fail(ReasonStorage, ErrMsgAddFailed)
	}
	if !created {
		return ok(MsgAlreadyPresent)
	}
	return ok(MsgAdded)
}

// Remove deletes symbol for the user. Removing an absent symbol succeeds.
func (u *membershipUsecase) Remove(ctx context.Context, userID, symbol string) Result {
	if userID == "" {
		return fail(ReasonUnauthenticated, ErrMsgNotAuth)
	}
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return fail(ReasonInvalid, ErrMsgSymbolNeeded)
	}

	if err := u.repo.Remove(ctx, userID, symbol); err != nil {
		slog.Error("failed to remove from watchlist", "user_id", userID, "symbol", symbol, "error", err)
		return fail(ReasonStorage, ErrMsgRemoveFailed)
	}
	return ok(MsgRemoved)
}

// IsMember fails closed: anonymous callers, blank symbols and storage errors all yield false.
func (u *membershipUsecase) IsMember(ctx context.Context, userID, symbol string) bool {
	symbol = NormalizeSymbol(symbol)
	if userID == "" || symbol == "" {
		return false
	}
	exists, err := u.repo.Exists(ctx, userID, symbol)
	if err != nil {
		slog.Warn("watchlist membership check failed", "user_id", userID, "symbol", symbol, "error", err)
		return false
	}
	return exists
}

// EnrichWithStatus stamps IsInWatchlist on each stock using one load of the user's symbols.
// Empty input, anonymous callers and storage errors return stocks unchanged.
func (u *membershipUsecase) EnrichWithStatus(ctx context.Context, userID string, stocks []entity.StockStatus) []entity.StockStatus {
	if userID == "" || len(stocks) == 0 {
		return stocks
	}
	symbols, err := u.repo.ListSymbols(ctx, userID)
	if err != nil {
		slog.Warn("failed to load watchlist symbols", "user_id", userID, "error", err)
		return stocks
	}

	owned := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		owned[s] = struct{}{}
	}
	for i := range stocks {
		_, stocks[i].IsInWatchlist = owned[NormalizeSymbol(stocks[i].Symbol)]
	}
	return stocks
}

// ListSymbolsByEmail serves out-of-band jobs that know an email but have no session.
// Unknown emails and storage errors yield an empty slice.
func (u *membershipUsecase) ListSymbolsByEmail(ctx context.Context, email string) []string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || u.users == nil {
		return []string{}
	}
	userID, err := u.users.FindIDByEmail(ctx, email)
	if err != nil {
		slog.Warn("watchlist email lookup failed", "email", email, "error", err)
		return []string{}
	}
	symbols, err := u.repo.ListSymbols(ctx, userID)
	if err != nil {
		slog.Error("failed to load watchlist symbols", "user_id", userID, "error", err)
		return []string{}
	}
	if symbols == nil {
		return []string{}
	}
	return symbols
}
