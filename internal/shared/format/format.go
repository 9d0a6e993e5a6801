// Package format renders market figures for display.
package format

import "github.com/shopspring/decimal"

// NotAvailable is shown for missing or zero values.
const NotAvailable = "N/A"

var thousand = decimal.NewFromInt(1000)

// Price renders "$123.40", or NotAvailable unless price > 0.
func Price(price float64) string {
	if price <= 0 {
		return NotAvailable
	}
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

// Change renders "+2.50%" / "-1.20%", or NotAvailable for zero.
func Change(percent float64) string {
	if percent == 0 {
		return NotAvailable
	}
	// negatives that round to zero keep their sign
	if percent < 0 {
		return "-" + decimal.NewFromFloat(-percent).StringFixed(2) + "%"
	}
	return "+" + decimal.NewFromFloat(percent).StringFixed(2) + "%"
}

// MarketCap renders a cap given in millions as billions, e.g. 2500000 -> "$2500.00B".
func MarketCap(millions float64) string {
	if millions <= 0 {
		return NotAvailable
	}
	return "$" + decimal.NewFromFloat(millions).Div(thousand).StringFixed(2) + "B"
}
