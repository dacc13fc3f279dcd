package donations

import "errors"

// Sentinel errors for the donation lifecycle. Handlers translate these into
// user-facing messages with errors.Is(); anything else is an unexpected
// persistence failure.
var (
	ErrMethodUnavailable = errors.New("the selected payment method is not available yet")
	ErrInvalidAmount     = errors.New("donation amount must be greater than zero")
	ErrNotFound          = errors.New("donation not found")
	ErrAlreadyInProgress = errors.New("this donation is already being processed")
	ErrMissingEvidence   = errors.New("a transaction slip is required for verification")
	ErrInvalidOutcome    = errors.New("outcome must be COMPLETED or FAILED")
)
