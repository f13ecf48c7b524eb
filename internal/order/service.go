package order

import (
	"context"
	"fmt"
	"math"
	"time"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/metrics"

	"go.uber.org/zap"
)

// WalletDebiter charges a user's wallet for a wallet-paid order.
type WalletDebiter interface {
	Debit(ctx context.Context, userID uint, amount float64, reference string) error
}

// PayLaterOpener records a deferred payment obligation for an order.
type PayLaterOpener interface {
	OpenForOrder(ctx context.Context, userID uint, orderID string, total float64) error
}

// PointsAwarder credits loyalty points earned by an order.
type PointsAwarder interface {
	Award(ctx context.Context, userID uint, points int, reference string) error
}

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrders(ctx context.Context, filter *OrderFilter, sort *OrderSort, limit, page *int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error
}

type service struct {
	repo     Repository
	wallet   WalletDebiter
	payLater PayLaterOpener
	loyalty  PointsAwarder
}

func NewService(repo Repository, wallet WalletDebiter, payLater PayLaterOpener, loyalty PointsAwarder) Service {
	return &service{
		repo:     repo,
		wallet:   wallet,
		payLater: payLater,
		loyalty:  loyalty,
	}
}

// CreateOrder persists the order, then settles payment side effects
// (wallet debit or pay-later record) and awards loyalty points.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", input.UserID),
		zap.Int("item_count", len(input.Items)),
	)

	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	estimated := input.EstimatedDelivery
	if estimated.IsZero() {
		estimated = time.Now().AddDate(0, 0, input.DeliveryMethod.EstimatedDays)
	}

	o := &Order{
		UserID:            input.UserID,
		Items:             items,
		DeliveryAddress:   input.DeliveryAddress,
		DeliveryMethod:    input.DeliveryMethod,
		PaymentMethod:     input.PaymentMethod,
		Subtotal:          input.Subtotal,
		DeliveryFee:       input.DeliveryFee,
		Discount:          input.Discount,
		Total:             input.Total,
		Notes:             input.Notes,
		EstimatedDelivery: estimated,
		Status:            StatusPending,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		metrics.Default.OrdersFailed.Inc()
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	metrics.Default.OrdersPlaced.Inc()
	log = log.With(zap.String("order_id", o.ID))

	switch o.PaymentMethod.ID {
	case PaymentMethodWallet:
		if err := s.wallet.Debit(ctx, o.UserID, o.Total, o.ID); err != nil {
			log.Error("wallet debit failed", zap.Error(err))
			s.unwind(ctx, log, o)
			return nil, fmt.Errorf("wallet payment: %w", err)
		}
		metrics.Default.WalletDebits.Inc()
	case PaymentMethodPayLater:
		if err := s.payLater.OpenForOrder(ctx, o.UserID, o.ID, o.Total); err != nil {
			log.Error("failed to open pay-later record", zap.Error(err))
			s.unwind(ctx, log, o)
			return nil, fmt.Errorf("pay later: %w", err)
		}
	}

	// One point per whole currency unit of subtotal.
	points := int(math.Floor(o.Subtotal))
	if points > 0 {
		if err := s.loyalty.Award(ctx, o.UserID, points, o.ID); err != nil {
			// Points are a perk, not part of the contract with the buyer.
			log.Warn("failed to award loyalty points", zap.Error(err))
		}
	}

	log.Info("order created", zap.String("order_number", o.OrderNumber))
	return o, nil
}

// unwind cancels a committed order whose payment could not be settled
// and restores the stock it reserved, so a retried checkout does not
// leave a stale PENDING row or decrement stock twice.
func (s *service) unwind(ctx context.Context, log *zap.Logger, o *Order) {
	metrics.Default.OrdersFailed.Inc()
	if err := s.repo.CancelOrderTx(ctx, o); err != nil {
		log.Error("failed to cancel order after payment failure",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func (s *service) GetOrders(
	ctx context.Context,
	filter *OrderFilter,
	sort *OrderSort,
	limit, page *int32,
) ([]*Order, error) {
	return s.repo.GetOrders(ctx, filter, sort, limit, page)
}

// GetOrderDetail lets users see only their own orders; admins see all.
func (s *service) GetOrderDetail(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error {
	switch status {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	return s.repo.UpdateOrderStatus(ctx, orderID, status)
}
