package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	CancelOrderTx(ctx context.Context, o *Order) error
	GetOrders(ctx context.Context, filter *OrderFilter, sort *OrderSort, limit, page *int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order, its item snapshots, and decrements
// product stock in a single transaction. Stock going negative aborts
// the whole order.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = utils.GenerateOrderNumber()
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id,
			street, city, state, zip_code,
			delivery_method_id, delivery_method_name, delivery_fee, estimated_days,
			payment_method_id, payment_method_name,
			subtotal, discount, total, notes, estimated_delivery, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at, updated_at
	`,
		o.ID, o.OrderNumber, o.UserID,
		o.DeliveryAddress.Street, o.DeliveryAddress.City, o.DeliveryAddress.State, o.DeliveryAddress.ZipCode,
		o.DeliveryMethod.ID, o.DeliveryMethod.Name, o.DeliveryFee, o.DeliveryMethod.EstimatedDays,
		o.PaymentMethod.ID, o.PaymentMethod.Name,
		o.Subtotal, o.Discount, o.Total, o.Notes, o.EstimatedDelivery, o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, image)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.Image).
			Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			log.Warn("stock check failed",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
	)

	return nil
}

// CancelOrderTx flips the order to CANCELLED and puts the reserved
// stock back, in a single transaction. Used to unwind an order whose
// payment could not be settled after the create committed.
func (r *repository) CancelOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrderTx"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, string(StatusCancelled), o.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	for i := range o.Items {
		item := &o.Items[i]
		if _, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock + $1, updated_at = NOW()
			WHERE id = $2
		`, item.Quantity, item.ProductID); err != nil {
			log.Error("failed to restore stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	o.Status = StatusCancelled
	log.Info("order cancelled, stock restored")
	return nil
}

func (r *repository) GetOrders(
	ctx context.Context,
	filter *OrderFilter,
	sort *OrderSort,
	limit, page *int32,
) ([]*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrders"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := int32(20)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if page != nil && *page > 0 {
		finalPage = *page
	}

	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if filter != nil {
		if filter.UserID != nil {
			where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)+1))
			args = append(args, *filter.UserID)
		}
		if filter.Status != nil {
			where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
			args = append(args, string(*filter.Status))
		}
	}

	// ---------- sort ----------
	orderBy := "o.created_at DESC"
	if sort != nil {
		field := "o.created_at"
		switch sort.Field {
		case "total":
			field = "o.total"
		case "status":
			field = "o.status"
		}

		dir := "DESC"
		if strings.EqualFold(sort.Direction, "asc") {
			dir = "ASC"
		}

		orderBy = field + " " + dir
	}

	query := `
	SELECT
		o.id, o.order_number, o.user_id,
		o.street, o.city, o.state, o.zip_code,
		o.delivery_method_id, o.delivery_method_name, o.delivery_fee, o.estimated_days,
		o.payment_method_id, o.payment_method_name,
		o.subtotal, o.discount, o.total, o.notes, o.estimated_delivery, o.status,
		o.created_at, o.updated_at
	FROM orders o`

	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}

	query += "\n\tORDER BY " + orderBy
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

	orders := make([]*Order, 0, finalLimit)
	for rows.Next() {
		o := &Order{}
		if err := scanOrder(rows, o); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	o := &Order{}

	row := r.db.QueryRowContext(ctx, `
	SELECT
		o.id, o.order_number, o.user_id,
		o.street, o.city, o.state, o.zip_code,
		o.delivery_method_id, o.delivery_method_name, o.delivery_fee, o.estimated_days,
		o.payment_method_id, o.payment_method_name,
		o.subtotal, o.discount, o.total, o.notes, o.estimated_delivery, o.status,
		o.created_at, o.updated_at
	FROM orders o
	WHERE o.id = $1
	`, orderID)

	if err := scanOrder(row, o); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT id, order_id, product_id, name, price, quantity, image
	FROM order_items
	WHERE order_id = $1
	ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Name, &item.Price, &item.Quantity, &item.Image,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, string(status), orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, o *Order) error {
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.DeliveryAddress.Street, &o.DeliveryAddress.City,
		&o.DeliveryAddress.State, &o.DeliveryAddress.ZipCode,
		&o.DeliveryMethod.ID, &o.DeliveryMethod.Name,
		&o.DeliveryFee, &o.DeliveryMethod.EstimatedDays,
		&o.PaymentMethod.ID, &o.PaymentMethod.Name,
		&o.Subtotal, &o.Discount, &o.Total, &o.Notes,
		&o.EstimatedDelivery, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	o.DeliveryMethod.Price = o.DeliveryFee
	return nil
}
