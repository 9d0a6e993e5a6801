// Package domain defines domain-level errors for market data lookups.
package domain

import "errors"

// ErrSymbolNotFound indicates the vendor answered but has no data for the symbol.
// Transport and HTTP failures are reported as other errors so callers can tell them apart.
var ErrSymbolNotFound = errors.New("symbol not found")
