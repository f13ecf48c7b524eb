package paylater

import (
	"context"
	"database/sql"
	"time"

	"foodbasket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *PayLaterOrder) error
	GetByID(ctx context.Context, id string) (*PayLaterOrder, error)
	GetByUser(ctx context.Context, userID uint) ([]*PayLaterOrder, error)
	UpdatePayment(ctx context.Context, id string, paidAmount float64, status Status) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *PayLaterOrder) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", p.OrderID),
	)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pay_later_orders (id, order_id, user_id, total_amount, paid_amount, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, p.ID, p.OrderID, p.UserID, p.TotalAmount, p.PaidAmount, p.DueDate, string(p.Status)).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create pay later order", zap.Error(err))
		return err
	}

	log.Info("pay later order created", zap.String("id", p.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*PayLaterOrder, error) {
	p := &PayLaterOrder{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, total_amount, paid_amount, due_date, status, created_at, updated_at
		FROM pay_later_orders
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.TotalAmount, &p.PaidAmount,
		&p.DueDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uint) ([]*PayLaterOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, user_id, total_amount, paid_amount, due_date, status, created_at, updated_at
		FROM pay_later_orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*PayLaterOrder{}
	for rows.Next() {
		p := &PayLaterOrder{}
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.UserID, &p.TotalAmount, &p.PaidAmount,
			&p.DueDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, p)
	}

	return orders, rows.Err()
}

func (r *repository) UpdatePayment(ctx context.Context, id string, paidAmount float64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pay_later_orders
		SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, paidAmount, string(status), id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkOverdue flips active records past their due date; returns how
// many were flipped.
func (r *repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pay_later_orders
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND due_date < $3
	`, string(StatusOverdue), string(StatusActive), now)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
