package loyalty

import (
	"context"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/metrics"
	"foodbasket-be/internal/pricing"

	"go.uber.org/zap"
)

// Service defines the business logic for loyalty points.
type Service interface {
	Balance(ctx context.Context, userID uint) (int, error)
	Award(ctx context.Context, userID uint, points int, reference string) error
	Redeem(ctx context.Context, userID uint, points int, reference string) (int, error)
	History(ctx context.Context, userID uint, limit int32) ([]*Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Balance(ctx context.Context, userID uint) (int, error) {
	a, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if a == nil {
		return 0, nil
	}
	return a.Points, nil
}

func (s *service) Award(ctx context.Context, userID uint, points int, reference string) error {
	if points <= 0 {
		return ErrInvalidPoints
	}

	if _, err := s.repo.ApplyTx(ctx, userID, EntryAward, points, reference); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("loyalty points awarded",
		zap.Uint("user_id", userID),
		zap.Int("points", points),
		zap.String("reference", reference),
	)
	return nil
}

// Redeem converts points into their monetary value. Returns the value
// in currency units at the engine's fixed point value.
func (s *service) Redeem(ctx context.Context, userID uint, points int, reference string) (int, error) {
	if points <= 0 {
		return 0, ErrInvalidPoints
	}

	a, err := s.repo.ApplyTx(ctx, userID, EntryRedeem, points, reference)
	if err != nil {
		return 0, err
	}

	metrics.Default.LoyaltyRedeemed.Add(uint64(points))
	logger.FromCtx(ctx).Info("loyalty points redeemed",
		zap.Uint("user_id", userID),
		zap.Int("points", points),
		zap.Int("remaining", a.Points),
		zap.Float64("value", float64(points)*pricing.PointValue),
	)

	return a.Points, nil
}

func (s *service) History(ctx context.Context, userID uint, limit int32) ([]*Entry, error) {
	return s.repo.GetEntries(ctx, userID, limit)
}
