package payment

import (
	"encoding/json"
	"time"
)

// OrderRequest is the storefront-side request to open a payment order.
// Amount is in major currency units (rupees); Receipt is an opaque reference.
type OrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
	Receipt  string  `json:"receipt,omitempty"`
}

// Order is the gateway-assigned order, immutable once returned. Amount is in
// minor units. Raw carries the gateway response verbatim for the caller.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

// Callback is what the gateway widget hands back after the payer completes
// payment. Untrusted input until VerifyCallback passes.
type Callback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Payment is the persisted record of a gateway order and its outcome.
type Payment struct {
	ID             uint
	OrderID        *uint
	GatewayOrderID string
	PaymentID      string
	Amount         int64
	Currency       string
	Receipt        string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	StatusCreated  = "CREATED"
	StatusVerified = "VERIFIED"
	StatusRejected = "REJECTED"
)
