package levy

import "errors"

var (
	ErrRunNotFound     = errors.New("levy run not found")
	ErrInvoiceNotFound = errors.New("levy invoice not found")

	// ErrRunAlreadyIssued rejects mutations of a run that has left draft.
	ErrRunAlreadyIssued = errors.New("levy run already issued")

	ErrNoLotsRegistered = errors.New("scheme has no lots registered")
	ErrZeroEntitlement  = errors.New("scheme entitlements sum to zero")
	ErrInvalidPeriod    = errors.New("invalid levy period")
	ErrInvalidFundType  = errors.New("invalid fund type")
)
