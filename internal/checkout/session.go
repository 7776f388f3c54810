// Package checkout drives a payment attempt through its lifecycle:
//
//	Idle -> OrderRequested -> WidgetOpen -> CallbackReceived -> Verified | Rejected
//
// with Failed reachable from any non-terminal step. One attempt is in flight
// per user at a time; the widget callback is re-verified server-side before
// any finalization.
package checkout

import (
	"strings"
	"time"

	"genzmart-be/internal/payment"
)

type State string

const (
	StateIdle             State = "IDLE"
	StateOrderRequested   State = "ORDER_REQUESTED"
	StateWidgetOpen       State = "WIDGET_OPEN"
	StateCallbackReceived State = "CALLBACK_RECEIVED"
	StateVerified         State = "VERIFIED"
	StateRejected         State = "REJECTED"
	StateFailed           State = "FAILED"
)

// inFlight reports whether the session holds the user's single checkout slot.
func (s State) inFlight() bool {
	return s == StateOrderRequested || s == StateWidgetOpen || s == StateCallbackReceived
}

// Terminal reports whether the session can no longer transition. Failed and
// Rejected sessions are terminal too; retrying means starting a fresh session.
func (s State) Terminal() bool {
	return s == StateVerified || s == StateRejected || s == StateFailed
}

type ShippingAddress struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
}

func (a ShippingAddress) Validate() error {
	fields := []string{a.FullName, a.Phone, a.StreetAddress, a.City, a.State, a.Pincode}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrIncompleteAddress
		}
	}
	return nil
}

type Session struct {
	ID           string
	UserID       uint
	State        State
	Amount       float64
	Address      ShippingAddress
	GatewayOrder *payment.Order
	OrderID      uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) transition(to State) {
	s.State = to
	s.UpdatedAt = time.Now()
}
