package product

import (
	"context"
	"database/sql"

	"foodbasket-be/internal/logger"

	"go.uber.org/zap"
)

type TagRepository interface {
	GetTags(ctx context.Context) ([]*Tag, error)
	GetTagsByProduct(ctx context.Context, productID string) ([]*Tag, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
	UpdateTag(ctx context.Context, id, name string) error
	DeleteTag(ctx context.Context, id string) error
	ReplaceProductTags(ctx context.Context, productID string, tagIDs []string) error
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTags(ctx context.Context) ([]*Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM product_tags
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *tagRepository) GetTagsByProduct(ctx context.Context, productID string) ([]*Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at
		FROM product_tag_relations rel
		JOIN product_tags t ON t.id = rel.tag_id
		WHERE rel.product_id = $1
		ORDER BY t.name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *tagRepository) CreateTag(ctx context.Context, name string) (*Tag, error) {
	t := &Tag{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_tags (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create tag",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE product_tags
		SET name = $1
		WHERE id = $2
	`, name, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// DeleteTag removes the tag and every product relation pointing at it
// in one transaction.
func (r *tagRepository) DeleteTag(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM product_tag_relations WHERE tag_id = $1
	`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM product_tags WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTagNotFound
	}

	return tx.Commit()
}

// ReplaceProductTags swaps the product's tag set for tagIDs atomically.
func (r *tagRepository) ReplaceProductTags(ctx context.Context, productID string, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM product_tag_relations WHERE product_id = $1
	`, productID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_tag_relations (product_id, tag_id)
			VALUES ($1, $2)
		`, productID, tagID); err != nil {
			logger.FromCtx(ctx).Error("failed to relate tag",
				zap.String("product_id", productID),
				zap.String("tag_id", tagID),
				zap.Error(err),
			)
			return err
		}
	}

	return tx.Commit()
}

func scanTags(rows *sql.Rows) ([]*Tag, error) {
	tags := []*Tag{}
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
