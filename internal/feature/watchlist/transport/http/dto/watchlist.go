// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	"time"

	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/feature/watchlist/usecase"
	"signalist_backend/internal/shared/format"
)

// AddRequest is the body of POST /watchlist.
type AddRequest struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}

// StockRequest is one element of POST /watchlist/status.
type StockRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// StatusRequest is the body of POST /watchlist/status.
type StatusRequest struct {
	Stocks []StockRequest `json:"stocks"`
}

// StockStatusItem echoes a stock with its membership flag.
type StockStatusItem struct {
	StockRequest
	IsInWatchlist bool `json:"isInWatchlist"`
}

// MembershipResponse is the body of GET /watchlist/:symbol.
type MembershipResponse struct {
	Symbol        string `json:"symbol"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}

// ResultResponse carries the outcome of add and remove.
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WatchlistItem is one enriched entry. Formatted fields read "N/A" when data is unavailable.
type WatchlistItem struct {
	Symbol             string    `json:"symbol"`
	Company            string    `json:"company"`
	AddedAt            time.Time `json:"addedAt"`
	CurrentPrice       float64   `json:"currentPrice"`
	ChangePercent      float64   `json:"changePercent"`
	MarketCap          float64   `json:"marketCap"`
	PriceFormatted     string    `json:"priceFormatted"`
	ChangeFormatted    string    `json:"changeFormatted"`
	MarketCapFormatted string    `json:"marketCapFormatted"`
	DataStatus         string    `json:"dataStatus"`
	UnavailableReason  string    `json:"unavailableReason,omitempty"`
}

// FromResult converts a membership result.
func FromResult(r usecase.Result) ResultResponse {
	return ResultResponse{Success: r.Success, Message: r.Message, Error: r.Error}
}

// FromEnriched converts usecase output, keeping its order.
func FromEnriched(in []entity.EnrichedEntry) []WatchlistItem {
	out := make([]WatchlistItem, 0, len(in))
	for _, e := range in {
		item := WatchlistItem{
			Symbol:             e.Symbol,
			Company:            e.Company,
			AddedAt:            e.AddedAt,
			DataStatus:         string(e.Market.Status),
			UnavailableReason:  string(e.Market.Reason),
			PriceFormatted:     format.NotAvailable,
			ChangeFormatted:    format.NotAvailable,
			MarketCapFormatted: format.NotAvailable,
		}
		if e.Market.Available() {
			item.CurrentPrice = e.Market.CurrentPrice
			item.ChangePercent = e.Market.ChangePercent
			item.MarketCap = e.Market.MarketCap
			item.PriceFormatted = format.Price(e.Market.CurrentPrice)
			item.ChangeFormatted = format.Change(e.Market.ChangePercent)
			item.MarketCapFormatted = format.MarketCap(e.Market.MarketCap)
		}
		out = append(out, item)
	}
	return out
}
