// Package payment owns the Razorpay order-creation and callback-verification
// flow. The gateway client converts amounts to minor units and authenticates
// with Basic auth; the verifier recomputes the callback HMAC server-side.
// Callback payloads come from the payer's browser and are never trusted
// without the HMAC check.
package payment

import "context"

type Gateway interface {
	// CreateOrder registers an order with the gateway. The amount is given in
	// major currency units and converted to minor units before transmission.
	// Exactly one outbound call, no retry: a duplicate call would create a
	// duplicate remote order.
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)

	// VerifyCallback checks the widget callback signature against the key
	// secret. A mismatch is a normal false result, not an error.
	VerifyCallback(cb Callback) (bool, error)
}
