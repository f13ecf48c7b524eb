package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"foodbasket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, error)
	GetByID(ctx context.Context, productID string) (*Product, error)
	GetFeatured(ctx context.Context, limit int32) ([]*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image,
	p.category_id, COALESCE(c.slug, ''), p.stock, p.featured,
	p.rating, p.num_reviews, p.discount_percentage,
	p.created_at, p.updated_at`

func (r *repository) GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	start := time.Now()

	finalLimit := int32(20)
	if opts.Limit != nil && *opts.Limit > 0 {
		finalLimit = *opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if opts.Page != nil && *opts.Page > 0 {
		finalPage = *opts.Page
	}
	offset := (finalPage - 1) * finalLimit

	where := []string{}
	args := []any{}

	if opts.CategoryID != nil && *opts.CategoryID != "" {
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)+1))
		args = append(args, *opts.CategoryID)
	}

	if opts.Search != nil && *opts.Search != "" {
		where = append(where, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.description ILIKE $%d)",
			len(args)+1, len(args)+1,
		))
		args = append(args, "%"+*opts.Search+"%")
	}

	if opts.MinPrice != nil {
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)+1))
		args = append(args, *opts.MinPrice)
	}

	if opts.MaxPrice != nil {
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)+1))
		args = append(args, *opts.MaxPrice)
	}

	if opts.InStockOnly {
		where = append(where, "p.stock > 0")
	}

	if opts.Featured != nil {
		where = append(where, fmt.Sprintf("p.featured = $%d", len(args)+1))
		args = append(args, *opts.Featured)
	}

	query := `
	SELECT` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}

	query += "\n\tORDER BY p.name ASC"
	query += fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		p := &Product{}
		if err := scanProduct(rows, p); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, productID string) (*Product, error) {
	p := &Product{}

	row := r.db.QueryRowContext(ctx, `
	SELECT`+productColumns+`
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.id = $1
	`, productID)

	if err := scanProduct(row, p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

func (r *repository) GetFeatured(ctx context.Context, limit int32) ([]*Product, error) {
	featured := true
	return r.GetList(ctx, ProductQueryOptions{
		Featured: &featured,
		Limit:    &limit,
	})
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	id := uuid.New().String()

	p := &Product{
		ID:                 id,
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		Image:              input.Image,
		CategoryID:         input.CategoryID,
		Stock:              input.Stock,
		Featured:           input.Featured,
		DiscountPercentage: input.DiscountPercentage,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, image, category_id, stock, featured, discount_percentage)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, id, input.Name, input.Description, input.Price, input.Image,
		input.CategoryID, input.Stock, input.Featured, input.DiscountPercentage,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", id))
	return p, nil
}

func (r *repository) Update(ctx context.Context, input UpdateProductInput) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, val)
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.Image != nil {
		addSet("image", *input.Image)
	}
	if input.CategoryID != nil {
		addSet("category_id", *input.CategoryID)
	}
	if input.Stock != nil {
		addSet("stock", *input.Stock)
	}
	if input.Featured != nil {
		addSet("featured", *input.Featured)
	}
	if input.DiscountPercentage != nil {
		addSet("discount_percentage", *input.DiscountPercentage)
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d
		RETURNING id, name, description, price, image, category_id, '', stock, featured,
			rating, num_reviews, discount_percentage, created_at, updated_at
	`, strings.Join(set, ", "), len(args)+1)
	args = append(args, input.ProductID)

	p := &Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, query, args...), p); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.CategoryID, &p.CategorySlug, &p.Stock, &p.Featured,
		&p.Rating, &p.NumReviews, &p.DiscountPercentage,
		&p.CreatedAt, &p.UpdatedAt,
	)
}
