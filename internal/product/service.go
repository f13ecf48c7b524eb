package product

import (
	"context"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog.
type Service interface {
	GetProducts(ctx context.Context, opts ProductQueryOptions) ([]*Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	GetFeaturedProducts(ctx context.Context, limit int32) ([]*Product, error)
	CreateProduct(ctx context.Context, input NewProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProducts(ctx context.Context, opts ProductQueryOptions) ([]*Product, error) {
	return s.repo.GetList(ctx, opts)
}

func (s *service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) GetFeaturedProducts(ctx context.Context, limit int32) ([]*Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.repo.GetFeatured(ctx, limit)
}

func (s *service) CreateProduct(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", input.Name),
	)

	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	return s.repo.Update(ctx, input)
}
