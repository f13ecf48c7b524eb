package wallet

import (
	"context"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for user wallets.
type Service interface {
	GetOrCreate(ctx context.Context, userID uint) (*Wallet, error)
	Debit(ctx context.Context, userID uint, amount float64, reference string) error
	Credit(ctx context.Context, userID uint, amount float64, reference string) (*Wallet, error)
	Transactions(ctx context.Context, userID uint, limit int32) ([]*Transaction, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOrCreate returns the user's wallet, creating an empty one on
// first touch. Mirrors the storefront's create-if-absent behavior.
func (s *service) GetOrCreate(ctx context.Context, userID uint) (*Wallet, error) {
	w, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}
	return s.repo.Create(ctx, userID)
}

func (s *service) Debit(ctx context.Context, userID uint, amount float64, reference string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Debit"),
		zap.Uint("user_id", userID),
		zap.Float64("amount", amount),
	)

	if amount <= 0 {
		return ErrInvalidAmount
	}

	// Make sure a wallet row exists before the conditional debit, so a
	// fresh user gets ErrInsufficientBalance rather than not-found.
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}

	if _, err := s.repo.ApplyTx(ctx, userID, TransactionDebit, amount, reference); err != nil {
		log.Warn("debit refused", zap.Error(err))
		return err
	}

	log.Info("wallet debited", zap.String("reference", reference))
	return nil
}

func (s *service) Credit(ctx context.Context, userID uint, amount float64, reference string) (*Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.ApplyTx(ctx, userID, TransactionCredit, amount, reference)
}

func (s *service) Transactions(ctx context.Context, userID uint, limit int32) ([]*Transaction, error) {
	w, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return []*Transaction{}, nil
	}
	return s.repo.GetTransactions(ctx, w.ID, limit)
}
