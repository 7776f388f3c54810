package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"genzmart-be/internal/logger"
	"genzmart-be/internal/order"
	"genzmart-be/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	gateway  payment.Gateway
	payments payment.Repository
	orders   order.Service
}

func NewPaymentHandler(gateway payment.Gateway, payments payment.Repository, orders order.Service) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, payments: payments, orders: orders}
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	gwOrder, err := h.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		case errors.Is(err, payment.ErrMissingCredentials):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Razorpay keys not configured"})
		default:
			var gwErr *payment.GatewayError
			if errors.As(err, &gwErr) {
				log.Error("razorpay rejected order creation",
					zap.Int("status", gwErr.StatusCode),
				)
				// The gateway usually answers with JSON, but a proxy or
				// outage page may not.
				if json.Valid(gwErr.Body) {
					c.JSON(http.StatusInternalServerError, gin.H{"error": json.RawMessage(gwErr.Body)})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": string(gwErr.Body)})
				}
				return
			}
			log.Error("order creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	// The gateway response is returned verbatim so the widget sees
	// exactly what Razorpay produced.
	c.JSON(http.StatusOK, gin.H{"success": true, "order": json.RawMessage(gwOrder.Raw)})
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx)

	var cb payment.Callback
	if err := c.ShouldBindJSON(&cb); err != nil ||
		cb.OrderID == "" || cb.PaymentID == "" || cb.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	verified, err := h.gateway.VerifyCallback(cb)
	if err != nil {
		if errors.Is(err, payment.ErrMissingCredentials) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Razorpay keys not configured"})
			return
		}
		log.Error("verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	if !verified {
		log.Info("payment signature rejected",
			zap.String("gateway_order_id", cb.OrderID),
			zap.String("payment_id", cb.PaymentID),
		)
		h.recordRejected(c, cb)
		c.JSON(http.StatusBadRequest, gin.H{"verified": false})
		return
	}

	h.recordVerified(c, cb)
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// recordVerified finalizes the payment and its order. A callback for an
// order this process never created is answered by signature alone.
func (h *PaymentHandler) recordVerified(c *gin.Context, cb payment.Callback) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx)

	if err := h.payments.MarkVerified(ctx, cb.OrderID, cb.PaymentID); err != nil {
		if !errors.Is(err, payment.ErrPaymentNotFound) {
			log.Error("failed to record verified payment", zap.Error(err))
		}
		return
	}
	if err := h.orders.MarkAsPaid(ctx, cb.OrderID); err != nil && !errors.Is(err, order.ErrOrderNotFound) {
		log.Error("failed to finalize order", zap.Error(err))
	}
}

func (h *PaymentHandler) recordRejected(c *gin.Context, cb payment.Callback) {
	ctx := c.Request.Context()

	if err := h.payments.MarkRejected(ctx, cb.OrderID); err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		logger.FromCtx(ctx).Error("failed to record rejected payment", zap.Error(err))
	}
}
