package entity

// DataStatus tells whether live market data backs an enriched entry.
type DataStatus string

const (
	DataLive        DataStatus = "live"
	DataUnavailable DataStatus = "unavailable"
)

// UnavailableReason explains why market data is missing.
type UnavailableReason string

const (
	ReasonNone           UnavailableReason = ""
	ReasonSymbolNotFound UnavailableReason = "symbol_not_found"
	ReasonUpstreamError  UnavailableReason = "upstream_error"
)

// MarketData is the outcome of enriching one symbol: either live values or an explicit
// unavailable marker. Numeric fields are zero whenever Status is DataUnavailable.
type MarketData struct {
	Status        DataStatus
	Reason        UnavailableReason
	CurrentPrice  float64
	ChangePercent float64
	MarketCap     float64 // millions
}

// LiveMarketData builds a live outcome.
func LiveMarketData(price, changePercent, marketCap float64) MarketData {
	return MarketData{
		Status:        DataLive,
		CurrentPrice:  price,
		ChangePercent: changePercent,
		MarketCap:     marketCap,
	}
}

// UnavailableMarketData builds an unavailable outcome with zeroed numerics.
func UnavailableMarketData(reason UnavailableReason) MarketData {
	return MarketData{Status: DataUnavailable, Reason: reason}
}

// Available reports whether the values came from the gateway.
func (m MarketData) Available() bool {
	return m.Status == DataLive
}
