package economy

import "errors"

// Sentinel errors returned by the ledger, shop and auction operations.
// Callers match them with errors.Is; every failure path returns one of these
// wrapped with context rather than an ad-hoc error.
var (
	ErrNotFound              = errors.New("entry not found")
	ErrInsufficientFunds     = errors.New("insufficient star crystals")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrPurchaseLimitExceeded = errors.New("purchase limit exceeded")
	ErrSelfTrade             = errors.New("cannot buy own listing")
	ErrInvalidValue          = errors.New("invalid value")
	ErrOverflow              = errors.New("crystal value overflow")
)
