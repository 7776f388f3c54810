package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"genzmart-be/internal/checkout"
	"genzmart-be/internal/order"
	"genzmart-be/internal/payment"
	"genzmart-be/internal/product"
	"genzmart-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonBody(t *testing.T, body interface{}) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	return &buf
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) VerifyCallback(cb payment.Callback) (bool, error) {
	args := m.Called(cb)
	return args.Bool(0), args.Error(1)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) SavePayment(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepo) MarkVerified(ctx context.Context, gatewayOrderID, paymentID string) error {
	args := m.Called(ctx, gatewayOrderID, paymentID)
	return args.Error(0)
}

func (m *MockPaymentRepo) MarkRejected(ctx context.Context, gatewayOrderID string) error {
	args := m.Called(ctx, gatewayOrderID)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Payment, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID uint, total float64, gatewayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, userID, total, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) MarkAsPaid(ctx context.Context, gatewayOrderID string) error {
	args := m.Called(ctx, gatewayOrderID)
	return args.Error(0)
}

func (m *MockOrderService) MarkAsFailed(ctx context.Context, gatewayOrderID string) error {
	args := m.Called(ctx, gatewayOrderID)
	return args.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uint) (product.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, p product.Product) (product.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uint, update product.ProductUpdate) (product.Product, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (string, user.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, user.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Begin(ctx context.Context, userID uint, amount float64, addr checkout.ShippingAddress) (*checkout.Session, error) {
	args := m.Called(ctx, userID, amount, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockCheckoutService) HandleCallback(ctx context.Context, sessionID string, userID uint, cb payment.Callback) (*checkout.Session, error) {
	args := m.Called(ctx, sessionID, userID, cb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockCheckoutService) Cancel(sessionID string, userID uint) error {
	args := m.Called(sessionID, userID)
	return args.Error(0)
}

func (m *MockCheckoutService) GetSession(sessionID string, userID uint) (*checkout.Session, error) {
	args := m.Called(sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}
