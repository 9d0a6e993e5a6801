package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{-3, "N/A"},
		{123.4, "$123.40"},
		{189.125, "$189.13"},
		{0.5, "$0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.in), "Price(%v)", tt.in)
	}
}

func TestChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{2.5, "+2.50%"},
		{-1.2, "-1.20%"},
		{0.004, "+0.00%"},
		{-0.004, "-0.00%"},
		{-0.126, "-0.13%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Change(tt.in), "Change(%v)", tt.in)
	}
}

func TestMarketCap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{2500000, "$2500.00B"},
		{1234.5, "$1.23B"},
		{999, "$1.00B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MarketCap(tt.in), "MarketCap(%v)", tt.in)
	}
}
