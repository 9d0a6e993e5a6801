// Package entity defines the domain models for the stocksearch feature.
package entity

import "time"

// Symbol is a row of the curated catalog shown when the search box is empty.
// Rows are ordered by SortKey; inactive rows are hidden.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (Symbol) TableName() string {
	return "popular_symbols"
}

// DefaultPopular seeds the catalog when it is empty.
var DefaultPopular = []Symbol{
	{Code: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 1},
	{Code: "MSFT", Name: "Microsoft Corp", Exchange: "NASDAQ", IsActive: true, SortKey: 2},
	{Code: "GOOGL", Name: "Alphabet Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 3},
	{Code: "AMZN", Name: "Amazon.com Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 4},
	{Code: "TSLA", Name: "Tesla Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 5},
	{Code: "META", Name: "Meta Platforms Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 6},
	{Code: "NVDA", Name: "NVIDIA Corp", Exchange: "NASDAQ", IsActive: true, SortKey: 7},
	{Code: "NFLX", Name: "Netflix Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 8},
	{Code: "ORCL", Name: "Oracle Corp", Exchange: "NYSE", IsActive: true, SortKey: 9},
	{Code: "CRM", Name: "Salesforce Inc", Exchange: "NYSE", IsActive: true, SortKey: 10},
	{Code: "ADBE", Name: "Adobe Inc", Exchange: "NASDAQ", IsActive: true, SortKey: 11},
	{Code: "INTC", Name: "Intel Corp", Exchange: "NASDAQ", IsActive: true, SortKey: 12},
}
