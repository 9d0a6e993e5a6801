// Package usecase implements watchlist membership, enrichment and the digest job.
package usecase

// User-facing messages of the membership operations.
const (
	MsgAdded           = "Added to watchlist"
	MsgAlreadyPresent  = "Already in watchlist"
	MsgRemoved         = "Removed from watchlist"
	ErrMsgNotAuth      = "Not authenticated"
	ErrMsgSymbolNeeded = "Symbol is required"
	ErrMsgAddFailed    = "Failed to add to watchlist"
	ErrMsgRemoveFailed = "Failed to remove from watchlist"
)
