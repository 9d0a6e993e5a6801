package usecase

import (
	"context"
	"sort"
	"sync"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/domain/entity"
)

// memRepo is an in-memory WatchlistRepository. Setting a *Err field makes that method fail.
type memRepo struct {
	mu      sync.Mutex
	entries map[string]entity.WatchlistEntry // key: userID + "|" + symbol

	addErr, removeErr, existsErr, listErr error
	listSymbolsCalls                       int
}

func newMemRepo() *memRepo {
	return &memRepo{entries: map[string]entity.WatchlistEntry{}}
}

func (r *memRepo) Add(_ context.Context, e *entity.WatchlistEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return false, r.addErr
	}
	k := e.UserID + "|" + e.Symbol
	if _, ok := r.entries[k]; ok {
		return false, nil
	}
	r.entries[k] = *e
	return true, nil
}

func (r *memRepo) Remove(_ context.Context, userID, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removeErr != nil {
		return r.removeErr
	}
	delete(r.entries, userID+"|"+symbol)
	return nil
}

func (r *memRepo) Exists(_ context.Context, userID, symbol string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.entries[userID+"|"+symbol]
	return ok, nil
}

func (r *memRepo) ListByUser(_ context.Context, userID string) ([]entity.WatchlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []entity.WatchlistEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

func (r *memRepo) ListSymbols(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	r.listSymbolsCalls++
	r.mu.Unlock()
	entries, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	return out, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type mockDirectory struct {
	findFn func(ctx context.Context, email string) (string, error)
}

func (m *mockDirectory) FindIDByEmail(ctx context.Context, email string) (string, error) {
	return m.findFn(ctx, email)
}

type mockGateway struct {
	quoteFn   func(ctx context.Context, symbol string) (*mdentity.Quote, error)
	profileFn func(ctx context.Context, symbol string) (*mdentity.Profile, error)
}

func (m *mockGateway) GetQuote(ctx context.Context, symbol string) (*mdentity.Quote, error) {
	return m.quoteFn(ctx, symbol)
}

func (m *mockGateway) GetProfile(ctx context.Context, symbol string) (*mdentity.Profile, error) {
	return m.profileFn(ctx, symbol)
}
