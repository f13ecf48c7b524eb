package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/metrics"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/product"

	"go.uber.org/zap"
)

// Store owns the line items of a single shopping session. It hydrates
// from its Storage on construction and writes through on every
// mutation. A corrupt persisted payload is discarded, never surfaced.
//
// There is one line item per distinct product id: adding a product that
// is already in the cart increments its quantity.
type Store struct {
	mu      sync.Mutex
	items   []LineItem
	storage Storage
	creator order.Creator
}

// NewStore builds a session cart backed by storage. Orders placed at
// checkout go through creator.
func NewStore(storage Storage, creator order.Creator) *Store {
	s := &Store{
		storage: storage,
		creator: creator,
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	data, ok, err := s.storage.Get(StorageKey)
	if err != nil || !ok {
		return
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		// Unparsable carts are dropped, not reported: the user just
		// starts with an empty basket.
		logger.L().Warn("discarding corrupt persisted cart", zap.Error(err))
		_ = s.storage.Delete(StorageKey)
		return
	}

	s.items = items
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.items)
	if err != nil {
		logger.L().Warn("failed to serialize cart", zap.Error(err))
		return
	}
	if err := s.storage.Set(StorageKey, data); err != nil {
		logger.L().Warn("failed to persist cart", zap.Error(err))
	}
}

// AddProduct puts quantity units of p into the cart. Quantity must be
// positive; anything else is rejected rather than clamped.
func (s *Store) AddProduct(p product.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity += quantity
			s.persistLocked()
			return nil
		}
	}

	s.items = append(s.items, LineItem{Product: p, Quantity: quantity})
	s.persistLocked()
	return nil
}

// AddLineItem merges an already-formed line item into the cart. It is
// the second, explicit entry point for callers that carry (product,
// quantity) pairs around, e.g. a re-order flow.
func (s *Store) AddLineItem(li LineItem) error {
	return s.AddProduct(li.Product, li.Quantity)
}

// Remove deletes the line item for productID. Removing an absent
// product is a no-op, not an error.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// UpdateQuantity overwrites the quantity for productID. A quantity of
// zero or less behaves exactly like Remove.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			s.persistLocked()
			return
		}
	}
}

// Clear empties the cart and removes the persisted copy.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.items = nil
	if err := s.storage.Delete(StorageKey); err != nil {
		logger.L().Warn("failed to clear persisted cart", zap.Error(err))
	}
}

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount is the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, li := range s.items {
		count += li.Quantity
	}
	return count
}

// Subtotal is the pre-fee, pre-discount sum of line prices. Full
// pricing (promo, loyalty, fees) is the checkout flow's job.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := 0.0
	for _, li := range s.items {
		sum += li.Product.Price * float64(li.Quantity)
	}
	return sum
}

// Checkout snapshots the cart into an order payload and hands it to the
// order-creation collaborator. The cart is cleared only after the
// collaborator succeeds; on failure it is left exactly as it was.
func (s *Store) Checkout(
	ctx context.Context,
	userID uint,
	address order.DeliveryAddress,
	method order.DeliveryMethod,
	payMethod order.PaymentMethod,
	notes *string,
) (*order.Order, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", userID),
		zap.Int("line_count", len(s.items)),
	)

	if len(s.items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]order.CreateItem, 0, len(s.items))
	subtotal := 0.0
	for _, li := range s.items {
		items = append(items, order.CreateItem{
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			Price:     li.Product.Price,
			Quantity:  li.Quantity,
			Image:     li.Product.Image,
		})
		subtotal += li.Product.Price * float64(li.Quantity)
	}

	deliveryFee := method.Price
	input := order.CreateOrderInput{
		UserID:            userID,
		Items:             items,
		DeliveryAddress:   address,
		DeliveryMethod:    method,
		PaymentMethod:     payMethod,
		Subtotal:          subtotal,
		DeliveryFee:       deliveryFee,
		Total:             subtotal + deliveryFee,
		Notes:             notes,
		EstimatedDelivery: time.Now().AddDate(0, 0, method.EstimatedDays),
	}

	placed, err := s.creator.Create(ctx, input)
	if err != nil {
		log.Warn("order placement failed, cart preserved", zap.Error(err))
		return nil, err
	}

	metrics.Default.CartCheckouts.Inc()
	s.clearLocked()

	log.Info("checkout complete", zap.String("order_id", placed.ID))
	return placed, nil
}
