package wallet

import (
	"context"
	"database/sql"

	"foodbasket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUser(ctx context.Context, userID uint) (*Wallet, error)
	Create(ctx context.Context, userID uint) (*Wallet, error)
	ApplyTx(ctx context.Context, userID uint, txType TransactionType, amount float64, reference string) (*Wallet, error)
	GetTransactions(ctx context.Context, walletID string, limit int32) ([]*Transaction, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUser(ctx context.Context, userID uint) (*Wallet, error) {
	w := &Wallet{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`, userID).Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) Create(ctx context.Context, userID uint) (*Wallet, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	w := &Wallet{
		ID:     uuid.New().String(),
		UserID: userID,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wallets (id, user_id, balance)
		VALUES ($1, $2, 0)
		RETURNING balance, created_at, updated_at
	`, w.ID, userID).Scan(&w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		log.Error("failed to create wallet", zap.Error(err))
		return nil, err
	}

	log.Info("wallet created", zap.String("wallet_id", w.ID))
	return w, nil
}

// ApplyTx moves the balance and records the ledger entry in one
// transaction. Debits that would take the balance negative affect no
// rows and map to ErrInsufficientBalance.
func (r *repository) ApplyTx(
	ctx context.Context,
	userID uint,
	txType TransactionType,
	amount float64,
	reference string,
) (*Wallet, error) {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w := &Wallet{}
	var row *sql.Row

	if txType == TransactionDebit {
		row = tx.QueryRowContext(ctx, `
			UPDATE wallets
			SET balance = balance - $1, updated_at = NOW()
			WHERE user_id = $2 AND balance >= $1
			RETURNING id, user_id, balance, created_at, updated_at
		`, amount, userID)
	} else {
		row = tx.QueryRowContext(ctx, `
			UPDATE wallets
			SET balance = balance + $1, updated_at = NOW()
			WHERE user_id = $2
			RETURNING id, user_id, balance, created_at, updated_at
		`, amount, userID)
	}

	err = row.Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		if txType == TransactionDebit {
			return nil, ErrInsufficientBalance
		}
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, reference)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), w.ID, string(txType), amount, reference)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) GetTransactions(ctx context.Context, walletID string, limit int32) ([]*Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, wallet_id, type, amount, reference, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, walletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]*Transaction, 0, limit)
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Reference, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}

	return txs, rows.Err()
}
