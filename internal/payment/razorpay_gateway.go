package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"genzmart-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

const defaultCurrency = "INR"

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayGateway builds the gateway client. Missing credentials are not
// fatal here; CreateOrder and VerifyCallback fail fast with
// ErrMissingCredentials before touching the network.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// MinorUnits converts a major-unit amount to integer minor units (paise).
// math.Round is half-away-from-zero, which is round-half-up for the positive
// amounts that pass validation; the gateway never sees fractional paise.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if g.keyID == "" || g.keySecret == "" {
		return nil, ErrMissingCredentials
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	log := logger.FromCtx(ctx).With(
		zap.Float64("amount", req.Amount),
		zap.String("currency", currency),
		zap.String("receipt", req.Receipt),
	)

	body := map[string]interface{}{
		"amount":          MinorUnits(req.Amount),
		"currency":        currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal order request", zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	httpReq.SetBasicAuth(g.keyID, g.keySecret)
	httpReq.Header.Add("Content-Type", "application/json")

	log.Info("Sending order request to Razorpay")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Razorpay request failed", zap.Error(err))
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: bodyBytes}
	}

	var order Order
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		log.Error("Failed decoding Razorpay response", zap.Error(err))
		return nil, err
	}
	order.Raw = json.RawMessage(bodyBytes)

	log.Info("Razorpay order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount_paise", order.Amount),
	)

	return &order, nil
}

func (g *razorpayGateway) VerifyCallback(cb Callback) (bool, error) {
	return VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature, g.keySecret)
}
