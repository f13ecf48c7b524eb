package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountRow(userID uint, points int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"user_id", "points", "created_at", "updated_at"}).
		AddRow(userID, points, now, now)
}

func TestRepository_ApplyTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Award upserts the account", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)INSERT INTO loyalty_accounts.*ON CONFLICT \(user_id\)`).
			WithArgs(uint(7), 20).
			WillReturnRows(accountRow(7, 20))
		mock.ExpectExec(`INSERT INTO loyalty_entries`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		a, err := repo.ApplyTx(ctx, 7, EntryAward, 20, "order-1")
		require.NoError(t, err)
		assert.Equal(t, 20, a.Points)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Redeem past balance maps to ErrInsufficientPoints", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)UPDATE loyalty_accounts.*points >= \$1`).
			WithArgs(500, uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "points", "created_at", "updated_at"}))
		mock.ExpectRollback()

		_, err = repo.ApplyTx(ctx, 7, EntryRedeem, 500, "checkout")
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})
}
