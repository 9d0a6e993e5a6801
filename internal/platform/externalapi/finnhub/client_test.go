package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mddomain "signalist_backend/internal/feature/marketdata/domain"
	"signalist_backend/internal/feature/marketdata/domain/entity"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())
}

func TestClient_GetQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    *entity.Quote
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"c":189.12,"d":2.3,"dp":1.25,"h":190,"l":187,"o":188,"pc":186.82,"t":1700000000}`,
			want:   &entity.Quote{Symbol: "AAPL", CurrentPrice: 189.12, ChangePercent: 1.25},
		},
		{
			name:    "unknown symbol",
			status:  http.StatusOK,
			body:    `{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`,
			wantErr: mddomain.ErrSymbolNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/quote", r.URL.Path)
				assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
				assert.Equal(t, "test-key", r.URL.Query().Get("token"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.GetQuote(context.Background(), " aapl ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetQuote_HTTPError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finnhub http 429")
	assert.False(t, errors.Is(err, mddomain.ErrSymbolNotFound), "upstream errors must stay distinguishable")
}

func TestClient_GetQuote_MalformedJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"c":`))
	})

	_, err := c.GetQuote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestClient_GetProfile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/profile2", r.URL.Path)
		if r.URL.Query().Get("symbol") == "MSFT" {
			_, _ = w.Write([]byte(`{"ticker":"MSFT","name":"Microsoft Corp","exchange":"NASDAQ NMS - GLOBAL MARKET","marketCapitalization":2500000}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := c.GetProfile(context.Background(), "msft")
	require.NoError(t, err)
	assert.Equal(t, &entity.Profile{Symbol: "MSFT", Name: "Microsoft Corp", Exchange: "NASDAQ NMS - GLOBAL MARKET", MarketCap: 2500000}, got)

	_, err = c.GetProfile(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, mddomain.ErrSymbolNotFound)
}

func TestClient_SearchSymbols(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"count":3,"result":[
			{"description":"APPLE INC","displaySymbol":"AAPL","symbol":"AAPL","type":"Common Stock"},
			{"description":"APPLE HOSPITALITY REIT","displaySymbol":"aple","symbol":"","type":"REIT"},
			{"description":"blank","displaySymbol":"","symbol":"","type":""}
		]}`))
	})

	got, err := c.SearchSymbols(context.Background(), " apple ")
	require.NoError(t, err)
	assert.Equal(t, []entity.Stock{
		{Symbol: "AAPL", Name: "APPLE INC", Type: "Common Stock"},
		{Symbol: "APLE", Name: "APPLE HOSPITALITY REIT", Type: "REIT"},
	}, got)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.GetQuote(ctx, "AAPL")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "k")
	t.Setenv("FINNHUB_BASE_URL", "")
	t.Setenv("FINNHUB_TIMEOUT", "3s")

	cfg := LoadConfig()
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}
