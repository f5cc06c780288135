package deal

import "errors"

// The full failure taxonomy for deal and registry operations. Every failed
// mutating operation leaves the deal and the registry exactly as they were.
var (
	// ErrInvalidParties signals buyer and seller are not two distinct parties.
	ErrInvalidParties = errors.New("deal: buyer and seller must be distinct parties")
	// ErrInvalidAmount signals a non-positive price or amount.
	ErrInvalidAmount = errors.New("deal: amount must be positive")
	// ErrInvalidState signals the operation is not legal in the current status.
	ErrInvalidState = errors.New("deal: operation not permitted in current status")
	// ErrAmountMismatch signals the funding amount differs from the agreed price.
	ErrAmountMismatch = errors.New("deal: amount does not match agreed price")
	// ErrUnauthorized signals the caller lacks rights for release or refund.
	ErrUnauthorized = errors.New("deal: caller not authorized")
	// ErrNotFound is returned when no deal exists for the provided identifier.
	ErrNotFound = errors.New("deal: not found")
)
