package product

import (
	"context"
	"strings"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

type TagService interface {
	GetTags(ctx context.Context) ([]*Tag, error)
	GetProductTags(ctx context.Context, productID string) ([]*Tag, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
	UpdateTag(ctx context.Context, id, name string) error
	DeleteTag(ctx context.Context, id string) error
	AssignTags(ctx context.Context, productID string, tagIDs []string) error
}

type tagService struct {
	repo TagRepository
}

func NewTagService(repo TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) GetTags(ctx context.Context) ([]*Tag, error) {
	return s.repo.GetTags(ctx)
}

func (s *tagService) GetProductTags(ctx context.Context, productID string) ([]*Tag, error) {
	if productID == "" {
		return []*Tag{}, nil
	}
	return s.repo.GetTagsByProduct(ctx, productID)
}

func (s *tagService) CreateTag(ctx context.Context, name string) (*Tag, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateTag"),
		zap.String("name", name),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagNameRequired
	}

	t, err := s.repo.CreateTag(ctx, name)
	if err != nil {
		log.Error("failed to create tag", zap.Error(err))
		return nil, err
	}

	log.Info("tag created", zap.String("tag_id", t.ID))
	return t, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrTagNameRequired
	}
	return s.repo.UpdateTag(ctx, id, name)
}

func (s *tagService) DeleteTag(ctx context.Context, id string) error {
	return s.repo.DeleteTag(ctx, id)
}

// AssignTags replaces the product's tag set.
func (s *tagService) AssignTags(ctx context.Context, productID string, tagIDs []string) error {
	return s.repo.ReplaceProductTags(ctx, productID, tagIDs)
}
