package handler

import (
	"errors"
	"net/http"

	"genzmart-be/internal/checkout"
	"genzmart-be/internal/payment"
	"genzmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type beginCheckoutRequest struct {
	Amount  float64                  `json:"amount"`
	Address checkout.ShippingAddress `json:"address"`
}

type sessionResponse struct {
	ID             string         `json:"id"`
	State          checkout.State `json:"state"`
	Amount         float64        `json:"amount"`
	GatewayOrderID string         `json:"gateway_order_id,omitempty"`
}

func toSessionResponse(s *checkout.Session) sessionResponse {
	resp := sessionResponse{ID: s.ID, State: s.State, Amount: s.Amount}
	if s.GatewayOrder != nil {
		resp.GatewayOrderID = s.GatewayOrder.ID
	}
	return resp
}

func (h *CheckoutHandler) Begin(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req beginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	session, err := h.checkout.Begin(c.Request.Context(), userID, req.Amount, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrIncompleteAddress),
			errors.Is(err, payment.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrAttemptInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "payment attempt already in progress"})
		case errors.Is(err, payment.ErrMissingCredentials):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Razorpay keys not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": toSessionResponse(session)})
}

func (h *CheckoutHandler) Callback(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var cb payment.Callback
	if err := c.ShouldBindJSON(&cb); err != nil ||
		cb.OrderID == "" || cb.PaymentID == "" || cb.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	session, err := h.checkout.HandleCallback(c.Request.Context(), c.Param("id"), userID, cb)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, checkout.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, checkout.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "session does not accept a callback"})
		case errors.Is(err, payment.ErrMissingCredentials):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Razorpay keys not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	if session.State == checkout.StateRejected {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "session": toSessionResponse(session)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true, "session": toSessionResponse(session)})
}

func (h *CheckoutHandler) Cancel(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.checkout.Cancel(c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, checkout.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, checkout.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "session cannot be canceled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cancel failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.checkout.GetSession(c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, checkout.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": toSessionResponse(session)})
}
