package paylater

import (
	"context"
	"time"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for pay-later obligations.
type Service interface {
	OpenForOrder(ctx context.Context, userID uint, orderID string, total float64) error
	GetUserOrders(ctx context.Context, userID uint) ([]*PayLaterOrder, error)
	MakePayment(ctx context.Context, userID uint, payLaterID string, amount float64) (*PayLaterOrder, error)
	SweepOverdue(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// OpenForOrder records a new obligation due 30 days out.
func (s *service) OpenForOrder(ctx context.Context, userID uint, orderID string, total float64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "OpenForOrder"),
		zap.Uint("user_id", userID),
		zap.String("order_id", orderID),
	)

	p := &PayLaterOrder{
		OrderID:     orderID,
		UserID:      userID,
		TotalAmount: total,
		PaidAmount:  0,
		DueDate:     s.now().AddDate(0, 0, DueDays),
		Status:      StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	log.Info("pay later obligation opened",
		zap.String("id", p.ID),
		zap.Time("due_date", p.DueDate),
	)
	return nil
}

func (s *service) GetUserOrders(ctx context.Context, userID uint) ([]*PayLaterOrder, error) {
	return s.repo.GetByUser(ctx, userID)
}

// MakePayment applies a partial or full payment. Reaching the total
// completes the record.
func (s *service) MakePayment(ctx context.Context, userID uint, payLaterID string, amount float64) (*PayLaterOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MakePayment"),
		zap.String("pay_later_id", payLaterID),
		zap.Float64("amount", amount),
	)

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	p, err := s.repo.GetByID(ctx, payLaterID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotFound
	}
	if p.Status == StatusCompleted {
		return nil, ErrAlreadySettled
	}
	if amount > p.Outstanding() {
		return nil, ErrOverpayment
	}

	newPaid := p.PaidAmount + amount
	newStatus := StatusActive
	if newPaid >= p.TotalAmount {
		newStatus = StatusCompleted
	}

	if err := s.repo.UpdatePayment(ctx, p.ID, newPaid, newStatus); err != nil {
		return nil, err
	}

	p.PaidAmount = newPaid
	p.Status = newStatus

	log.Info("pay later payment applied", zap.String("status", string(newStatus)))
	return p, nil
}

// SweepOverdue marks active records past due. Intended for a periodic job.
func (s *service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.FromCtx(ctx).Info("marked pay later orders overdue", zap.Int64("count", n))
	}
	return n, nil
}
