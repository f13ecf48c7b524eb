package category

import (
	"context"
	"strings"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	AddCategory(ctx context.Context, name string, imageURL *string) (*Category, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories retrieves all categories
func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)
	log.Info("GetCategories started")

	categories, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		log.Info("no categories found")
		return []*Category{}, nil
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategoryBySlug"),
		zap.String("slug", slug),
	)

	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Error("failed to get category", zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	return c, nil
}

func (s *service) AddCategory(ctx context.Context, name string, imageURL *string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)
	log.Info("AddCategory started")

	if strings.TrimSpace(name) == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, ErrNameRequired
	}

	category, err := s.repo.AddCategory(ctx, name, Slugify(name), imageURL)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.String("category_id", category.ID))
	return category, nil
}

// Slugify lowercases a name and replaces whitespace runs with dashes.
func Slugify(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}
