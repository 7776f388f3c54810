package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is an operator fault: key id or secret absent
	// from configuration. Checked before any network I/O.
	ErrMissingCredentials = errors.New("razorpay credentials not configured")

	// ErrInvalidAmount rejects non-positive amounts before conversion.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	ErrPaymentNotFound = errors.New("payment not found")
)

// GatewayError is a non-2xx response from the gateway. The payload is kept
// for diagnostics.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("razorpay error (status %d): %s", e.StatusCode, e.Body)
}
