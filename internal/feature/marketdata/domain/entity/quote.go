// Package entity defines the market data models shared by the watchlist and search features.
package entity

// Quote is a point-in-time price snapshot.
type Quote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	ChangePercent float64 `json:"change_percent"`
}

// Profile is the company profile for a symbol.
type Profile struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Exchange  string  `json:"exchange"`
	MarketCap float64 `json:"market_cap"` // millions, as reported by the vendor
}

// Stock is a catalog search hit.
type Stock struct {
	Symbol   string
	Name     string
	Exchange string
	Type     string
}
