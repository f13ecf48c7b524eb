package loyalty

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	GetAccount(ctx context.Context, userID uint) (*Account, error)
	ApplyTx(ctx context.Context, userID uint, entryType EntryType, points int, reference string) (*Account, error)
	GetEntries(ctx context.Context, userID uint, limit int32) ([]*Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAccount(ctx context.Context, userID uint) (*Account, error) {
	a := &Account{}

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, points, created_at, updated_at
		FROM loyalty_accounts
		WHERE user_id = $1
	`, userID).Scan(&a.UserID, &a.Points, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

// ApplyTx upserts the account, moves the balance and records the entry
// in one transaction. Redemptions that would go negative affect no rows
// and map to ErrInsufficientPoints.
func (r *repository) ApplyTx(
	ctx context.Context,
	userID uint,
	entryType EntryType,
	points int,
	reference string,
) (*Account, error) {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	a := &Account{}
	var row *sql.Row

	if entryType == EntryRedeem {
		row = tx.QueryRowContext(ctx, `
			UPDATE loyalty_accounts
			SET points = points - $1, updated_at = NOW()
			WHERE user_id = $2 AND points >= $1
			RETURNING user_id, points, created_at, updated_at
		`, points, userID)
	} else {
		row = tx.QueryRowContext(ctx, `
			INSERT INTO loyalty_accounts (user_id, points)
			VALUES ($1, $2)
			ON CONFLICT (user_id)
			DO UPDATE SET points = loyalty_accounts.points + $2, updated_at = NOW()
			RETURNING user_id, points, created_at, updated_at
		`, userID, points)
	}

	err = row.Scan(&a.UserID, &a.Points, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrInsufficientPoints
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loyalty_entries (id, user_id, type, points, reference)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), userID, string(entryType), points, reference)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *repository) GetEntries(ctx context.Context, userID uint, limit int32) ([]*Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, points, reference, created_at
		FROM loyalty_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Points, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
