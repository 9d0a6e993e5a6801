package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	mddomain "signalist_backend/internal/feature/marketdata/domain"
	"signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/platform/externalapi/finnhub/dto"
)

// Client はFinnhub APIから株価・企業プロフィール・銘柄検索結果を取得します。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetQuote は現在値と騰落率を取得します。
// 未知の銘柄はdomain.ErrSymbolNotFoundを返します。
func (c *Client) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var body dto.QuoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &body); err != nil {
		return nil, err
	}
	if body.Current == 0 && body.Timestamp == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, mddomain.ErrSymbolNotFound)
	}
	return &entity.Quote{
		Symbol:        symbol,
		CurrentPrice:  body.Current,
		ChangePercent: body.PercentChange,
	}, nil
}

// GetProfile は企業プロフィール（時価総額は百万単位）を取得します。
// 未知の銘柄はdomain.ErrSymbolNotFoundを返します。
func (c *Client) GetProfile(ctx context.Context, symbol string) (*entity.Profile, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var body dto.ProfileResponse
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &body); err != nil {
		return nil, err
	}
	if body.Ticker == "" && body.Name == "" {
		return nil, fmt.Errorf("profile %s: %w", symbol, mddomain.ErrSymbolNotFound)
	}
	return &entity.Profile{
		Symbol:    symbol,
		Name:      body.Name,
		Exchange:  body.Exchange,
		MarketCap: body.MarketCapitalization,
	}, nil
}

// SearchSymbols は銘柄検索を行います。
func (c *Client) SearchSymbols(ctx context.Context, query string) ([]entity.Stock, error) {
	var body dto.SearchResponse
	if err := c.get(ctx, "/search", url.Values{"q": {strings.TrimSpace(query)}}, &body); err != nil {
		return nil, err
	}
	stocks := make([]entity.Stock, 0, len(body.Result))
	for _, r := range body.Result {
		sym := r.Symbol
		if sym == "" {
			sym = r.DisplaySymbol
		}
		if sym == "" {
			continue
		}
		stocks = append(stocks, entity.Stock{
			Symbol: strings.ToUpper(sym),
			Name:   r.Description,
			Type:   r.Type,
		})
	}
	return stocks, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("finnhub http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("finnhub decode %s: %w", path, err)
	}
	return nil
}
