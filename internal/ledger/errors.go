package ledger

import "errors"

// Sentinel errors for ledger operation failures. Every failure is terminal
// for the invocation; no partial state is ever retained.
var (
	// ErrInsufficientContribution indicates the USD-equivalent of a funding
	// amount is below the minimum floor.
	ErrInsufficientContribution = errors.New("ledger: contribution below USD minimum")

	// ErrNotOwner indicates a non-owner attempted a withdrawal.
	ErrNotOwner = errors.New("ledger: caller is not the owner")

	// ErrTransferFailed indicates the balance sweep to the owner was rejected.
	ErrTransferFailed = errors.New("ledger: balance transfer failed")

	// ErrIndexOutOfRange indicates a funder index beyond the current count.
	ErrIndexOutOfRange = errors.New("ledger: funder index out of range")
)
