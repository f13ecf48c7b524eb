package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletRow(id string, userID uint, balance float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "balance", "created_at", "updated_at"}).
		AddRow(id, userID, balance, now, now)
}

func TestRepository_ApplyTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Debit success records ledger entry", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)UPDATE wallets.*balance = balance - \$1.*balance >= \$1`).
			WithArgs(25.0, uint(7)).
			WillReturnRows(walletRow("w1", 7, 75))
		mock.ExpectExec(`INSERT INTO wallet_transactions`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		w, err := repo.ApplyTx(ctx, 7, TransactionDebit, 25, "order-1")
		require.NoError(t, err)
		assert.Equal(t, 75.0, w.Balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Debit past balance maps to ErrInsufficientBalance", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)UPDATE wallets`).
			WithArgs(500.0, uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance", "created_at", "updated_at"}))
		mock.ExpectRollback()

		_, err = repo.ApplyTx(ctx, 7, TransactionDebit, 500, "order-1")
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("Credit on missing wallet maps to ErrWalletNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)UPDATE wallets.*balance = balance \+ \$1`).
			WithArgs(10.0, uint(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance", "created_at", "updated_at"}))
		mock.ExpectRollback()

		_, err = repo.ApplyTx(ctx, 9, TransactionCredit, 10, "topup")
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestRepository_GetByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing wallet returns nil, nil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT id, user_id, balance`).
			WithArgs(uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance", "created_at", "updated_at"}))

		w, err := repo.GetByUser(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, w)
	})
}
