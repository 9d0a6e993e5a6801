package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/feature/watchlist/usecase"
)

// runRepositoryContract exercises behaviour every WatchlistRepository must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) usecase.WatchlistRepository) {
	t.Run("add is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		e := &entity.WatchlistEntry{UserID: "u-1", Symbol: "AAPL", Company: "Apple Inc", AddedAt: time.Now().UTC()}

		created, err := repo.Add(ctx, e)
		require.NoError(t, err)
		assert.True(t, created)

		again := *e
		again.Company = "Renamed"
		created, err = repo.Add(ctx, &again)
		require.NoError(t, err)
		assert.False(t, created)

		entries, err := repo.ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Apple Inc", entries[0].Company, "existing entry is never updated")
	})

	t.Run("concurrent duplicate adds leave one row", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := repo.Add(ctx, &entity.WatchlistEntry{UserID: "u-1", Symbol: "NVDA", Company: "NVIDIA", AddedAt: time.Now().UTC()})
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					created++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		symbols, err := repo.ListSymbols(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"NVDA"}, symbols)
	})

	t.Run("remove and exists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.Add(ctx, &entity.WatchlistEntry{UserID: "u-1", Symbol: "AAPL", Company: "Apple", AddedAt: time.Now().UTC()})
		require.NoError(t, err)

		ok, err := repo.Exists(ctx, "u-1", "AAPL")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, "u-2", "AAPL")
		require.NoError(t, err)
		assert.False(t, ok, "entries are private to their owner")

		require.NoError(t, repo.Remove(ctx, "u-1", "AAPL"))
		require.NoError(t, repo.Remove(ctx, "u-1", "AAPL"), "removing an absent entry is not an error")

		ok, err = repo.Exists(ctx, "u-1", "AAPL")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lists newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		for i, sym := range []string{"OLD", "NEW", "MID"} {
			offset := map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i]
			_, err := repo.Add(ctx, &entity.WatchlistEntry{UserID: "u-1", Symbol: sym, Company: sym, AddedAt: base.Add(offset)})
			require.NoError(t, err)
		}
		_, err := repo.Add(ctx, &entity.WatchlistEntry{UserID: "u-2", Symbol: "XYZ", Company: "XYZ", AddedAt: base})
		require.NoError(t, err)

		entries, err := repo.ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "NEW", entries[0].Symbol)
		assert.Equal(t, "MID", entries[1].Symbol)
		assert.Equal(t, "OLD", entries[2].Symbol)
		assert.True(t, entries[0].AddedAt.Equal(base.Add(2*time.Hour)))

		symbols, err := repo.ListSymbols(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"NEW", "MID", "OLD"}, symbols)

		none, err := repo.ListByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
