// Package dto mirrors Finnhub JSON payloads.
package dto

// QuoteResponse is the body of GET /quote.
// Unknown symbols come back with every field zero (dp/d may be null).
type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// ProfileResponse is the body of GET /stock/profile2. Unknown symbols yield {}.
type ProfileResponse struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	Exchange             string  `json:"exchange"`
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Industry             string  `json:"finnhubIndustry"`
	Logo                 string  `json:"logo"`
	MarketCapitalization float64 `json:"marketCapitalization"` // millions
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Count  int            `json:"count"`
	Result []SearchResult `json:"result"`
}

// SearchResult is one symbol lookup hit.
type SearchResult struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
}
