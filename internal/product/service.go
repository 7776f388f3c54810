package product

import (
	"context"
	"strings"

	"genzmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uint) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id uint, update ProductUpdate) (Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uint) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, ErrEmptyName
	}
	if p.Price <= 0 {
		return Product{}, ErrInvalidPrice
	}
	if p.Stock < 0 {
		return Product{}, ErrNegativeStock
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return Product{}, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.Uint("product_id", created.ID),
		zap.String("name", created.Name),
	)

	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, update ProductUpdate) (Product, error) {
	// Validate only provided fields.
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return Product{}, ErrEmptyName
	}
	if update.Price != nil && *update.Price <= 0 {
		return Product{}, ErrInvalidPrice
	}
	if update.Stock != nil && *update.Stock < 0 {
		return Product{}, ErrNegativeStock
	}
	if !update.HasFields() {
		return Product{}, ErrNoFields
	}

	return s.repo.Update(ctx, id, update)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
