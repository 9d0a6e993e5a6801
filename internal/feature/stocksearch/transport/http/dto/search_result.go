// Package dto defines data transfer objects for the stocksearch HTTP API.
package dto

import wlentity "signalist_backend/internal/feature/watchlist/domain/entity"

// StockItem is one search hit with the caller's watchlist status.
type StockItem struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Type          string `json:"type"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}

// FromStatuses converts usecase output to response items.
func FromStatuses(in []wlentity.StockStatus) []StockItem {
	out := make([]StockItem, 0, len(in))
	for _, s := range in {
		out = append(out, StockItem{
			Symbol:        s.Symbol,
			Name:          s.Name,
			Exchange:      s.Exchange,
			Type:          s.Type,
			IsInWatchlist: s.IsInWatchlist,
		})
	}
	return out
}
