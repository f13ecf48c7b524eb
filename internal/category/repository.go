package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	AddCategory(ctx context.Context, name, slug string, imageURL *string) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, error) {

	// ---------- DEFAULTS ----------
	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("filter", utils.PtrString(filter)),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
		zap.Int32("offset", finalOffset),
	)
	log.Info("GetCategories started")

	// ---------- BASE QUERY ----------
	query := `
		SELECT
			c.id,
			c.name,
			c.slug,
			c.image_url
		FROM categories c
	`

	where := []string{}
	args := []interface{}{}

	// ---------- FILTER ----------
	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- ORDER ----------
	query += " ORDER BY c.name ASC"

	// ---------- PAGINATION ----------
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	log.Debug("Executing GetCategories query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	// ---------- EXECUTE ----------
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("slug", slug))

	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug, image_url FROM categories WHERE slug = $1",
		slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("GetBySlug DB query failed", zap.Error(err))
		return nil, err
	}

	return &c, nil
}

func (r *repository) AddCategory(
	ctx context.Context,
	name string,
	slug string,
	imageURL *string,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("category_name", name),
		zap.String("slug", slug),
	)
	log.Info("AddCategory started")

	query := `
		INSERT INTO categories (name, slug, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, image_url
	`

	log.Debug("Executing AddCategory query",
		zap.String("query", query),
	)

	var c Category

	err := r.db.QueryRowContext(ctx, query, name, slug, imageURL).
		Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success",
		zap.String("category_id", c.ID),
	)

	return &c, nil
}
