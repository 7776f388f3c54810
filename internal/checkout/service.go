package checkout

import (
	"context"
	"sync"
	"time"

	"genzmart-be/internal/logger"
	"genzmart-be/internal/metrics"
	"genzmart-be/internal/order"
	"genzmart-be/internal/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Begin starts a checkout attempt: validates the shipping address,
	// creates the remote gateway order and a pending local order, and leaves
	// the session in WidgetOpen for the payment widget.
	Begin(ctx context.Context, userID uint, amount float64, addr ShippingAddress) (*Session, error)

	// HandleCallback consumes the widget callback exactly once. A signature
	// mismatch lands in Rejected (cart preserved); only a verified callback
	// finalizes the order.
	HandleCallback(ctx context.Context, sessionID string, userID uint, cb payment.Callback) (*Session, error)

	// Cancel returns an abandoned WidgetOpen session to Idle. No remote state
	// has been consumed at that point, so there is nothing to undo.
	Cancel(sessionID string, userID uint) error

	GetSession(sessionID string, userID uint) (*Session, error)
}

type service struct {
	gateway  payment.Gateway
	payments payment.Repository
	orders   order.Service

	mu       sync.Mutex
	sessions map[string]*Session
	active   map[uint]string
}

func NewService(gateway payment.Gateway, payments payment.Repository, orders order.Service) Service {
	return &service{
		gateway:  gateway,
		payments: payments,
		orders:   orders,
		sessions: make(map[string]*Session),
		active:   make(map[uint]string),
	}
}

func (s *service) Begin(ctx context.Context, userID uint, amount float64, addr ShippingAddress) (*Session, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", userID),
		zap.Float64("amount", amount),
	)

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		State:     StateIdle,
		Amount:    amount,
		Address:   addr,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Claim the user's single in-flight slot before any network I/O.
	s.mu.Lock()
	if activeID, ok := s.active[userID]; ok {
		if existing, found := s.sessions[activeID]; found {
			if existing.State.inFlight() {
				s.mu.Unlock()
				return nil, ErrAttemptInFlight
			}
			// The previous attempt is settled; drop it so the map stays
			// bounded to the user's current attempt.
			delete(s.sessions, activeID)
		}
	}
	session.transition(StateOrderRequested)
	s.sessions[session.ID] = session
	s.active[userID] = session.ID
	s.mu.Unlock()

	log = log.With(zap.String("session_id", session.ID))
	log.Info("checkout started")

	gwOrder, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:  amount,
		Receipt: "rcpt-" + session.ID,
	})
	if err != nil {
		log.Error("gateway order creation failed", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}

	o, err := s.orders.Create(ctx, userID, amount, gwOrder.ID)
	if err != nil {
		log.Error("failed to record pending order", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}

	orderRef := o.ID
	if err := s.payments.SavePayment(ctx, &payment.Payment{
		OrderID:        &orderRef,
		GatewayOrderID: gwOrder.ID,
		Amount:         gwOrder.Amount,
		Currency:       gwOrder.Currency,
		Receipt:        gwOrder.Receipt,
	}); err != nil {
		log.Error("failed to record payment", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}

	s.mu.Lock()
	session.GatewayOrder = gwOrder
	session.OrderID = o.ID
	session.transition(StateWidgetOpen)
	s.mu.Unlock()

	metrics.CheckoutsStarted.Inc()
	metrics.OrdersCreated.Inc()

	log.Info("payment widget ready", zap.String("gateway_order_id", gwOrder.ID))

	return s.snapshot(session), nil
}

func (s *service) HandleCallback(ctx context.Context, sessionID string, userID uint, cb payment.Callback) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("session_id", sessionID),
		zap.String("gateway_order_id", cb.OrderID),
	)

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		s.mu.Unlock()
		return nil, ErrForbidden
	}
	if session.State != StateWidgetOpen {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	session.transition(StateCallbackReceived)
	s.mu.Unlock()

	verified, err := s.gateway.VerifyCallback(cb)
	if err != nil {
		log.Error("signature verification failed", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}

	// The callback must belong to this session's order; a valid signature for
	// a different order does not authorize this one.
	if !verified || cb.OrderID != session.GatewayOrder.ID {
		log.Warn("payment callback rejected")
		if repoErr := s.payments.MarkRejected(ctx, session.GatewayOrder.ID); repoErr != nil {
			log.Error("failed to record rejected payment", zap.Error(repoErr))
		}
		s.mu.Lock()
		session.transition(StateRejected)
		s.mu.Unlock()

		metrics.PaymentsRejected.Inc()
		return s.snapshot(session), nil
	}

	if err := s.payments.MarkVerified(ctx, cb.OrderID, cb.PaymentID); err != nil {
		log.Error("failed to record verified payment", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}
	if err := s.orders.MarkAsPaid(ctx, cb.OrderID); err != nil {
		log.Error("failed to finalize order", zap.Error(err))
		s.fail(session)
		return s.snapshot(session), err
	}

	s.mu.Lock()
	session.transition(StateVerified)
	s.mu.Unlock()

	metrics.PaymentsVerified.Inc()

	log.Info("payment verified, order finalized", zap.String("payment_id", cb.PaymentID))

	return s.snapshot(session), nil
}

func (s *service) Cancel(sessionID string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if session.UserID != userID {
		return ErrForbidden
	}
	if session.State != StateWidgetOpen {
		return ErrInvalidTransition
	}

	session.transition(StateIdle)
	metrics.CheckoutsCanceled.Inc()
	return nil
}

func (s *service) GetSession(sessionID string, userID uint) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	out := *session
	return &out, nil
}

func (s *service) fail(session *Session) {
	s.mu.Lock()
	session.transition(StateFailed)
	s.mu.Unlock()
}

// snapshot copies the session under the lock so callers never observe a
// concurrent transition mid-read.
func (s *service) snapshot(session *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *session
	return &out
}
