package order

import (
	"context"

	"genzmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID uint, total float64, gatewayOrderID string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id uint) error
	MarkAsPaid(ctx context.Context, gatewayOrderID string) error
	MarkAsFailed(ctx context.Context, gatewayOrderID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uint, total float64, gatewayOrderID string) (*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	o := &Order{
		UserID:         userID,
		Total:          total,
		Status:         StatusPending,
		GatewayOrderID: gatewayOrderID,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) MarkAsPaid(ctx context.Context, gatewayOrderID string) error {
	log := logger.FromCtx(ctx).With(zap.String("gateway_order_id", gatewayOrderID))

	existing, err := s.repo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if existing.Status == StatusPaid {
		log.Info("order already marked as paid")
		return nil
	}

	if err := s.repo.UpdateStatusByGatewayOrderID(ctx, gatewayOrderID, StatusPaid); err != nil {
		return err
	}

	log.Info("order marked as PAID")
	return nil
}

func (s *service) MarkAsFailed(ctx context.Context, gatewayOrderID string) error {
	log := logger.FromCtx(ctx).With(zap.String("gateway_order_id", gatewayOrderID))

	existing, err := s.repo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if existing.Status == StatusFailed {
		log.Info("order already marked as failed")
		return nil
	}

	if err := s.repo.UpdateStatusByGatewayOrderID(ctx, gatewayOrderID, StatusFailed); err != nil {
		return err
	}

	log.Info("order marked as FAILED")
	return nil
}
