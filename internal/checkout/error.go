package checkout

import "errors"

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrAttemptInFlight   = errors.New("a checkout attempt is already in flight")
	ErrInvalidTransition = errors.New("invalid checkout state transition")
	ErrIncompleteAddress = errors.New("all shipping address fields are required")
	ErrForbidden         = errors.New("forbidden")
)
