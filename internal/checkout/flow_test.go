package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"foodbasket-be/internal/cart"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type stubSession struct {
	id uint
	ok bool
}

func (s stubSession) UserID() (uint, bool) { return s.id, s.ok }

// stubCreator lets tests control and observe order placement. blockCh,
// when set, holds the call open until closed.
type stubCreator struct {
	mu      sync.Mutex
	calls   int
	err     error
	blockCh chan struct{}
}

func (c *stubCreator) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.blockCh != nil {
		<-c.blockCh
	}
	if c.err != nil {
		return nil, c.err
	}
	return &order.Order{ID: "o1", OrderNumber: "ORD-1", UserID: input.UserID}, nil
}

func (c *stubCreator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// --- Helpers ---

var (
	testAddress = order.DeliveryAddress{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704"}
	testMethod  = order.DeliveryMethod{ID: "standard", Name: "Standard", Price: 5, EstimatedDays: 3}
	testPayment = order.PaymentMethod{ID: "wallet", Name: "Wallet"}
)

func newFilledCart(t *testing.T, creator order.Creator) *cart.Store {
	t.Helper()
	s := cart.NewStore(cart.NewMemoryStorage(), creator)
	require.NoError(t, s.AddProduct(product.Product{ID: "p1", Name: "Apples", Price: 10}, 2))
	return s
}

func readyFlow(t *testing.T, creator *stubCreator) *Flow {
	t.Helper()
	f := NewFlow(newFilledCart(t, creator), stubSession{id: 7, ok: true})
	require.NoError(t, f.SelectAddress(testAddress))
	require.NoError(t, f.SelectDeliveryMethod(testMethod))
	require.NoError(t, f.Next(context.Background()))
	require.NoError(t, f.SelectPaymentMethod(testPayment))
	return f
}

// --- Tests ---

func TestFlow_ViewGuards(t *testing.T) {
	t.Run("empty cart wins over missing session", func(t *testing.T) {
		empty := cart.NewStore(cart.NewMemoryStorage(), nil)
		f := NewFlow(empty, stubSession{ok: false})
		assert.Equal(t, ViewEmptyCart, f.View())
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{ok: false})
		assert.Equal(t, ViewRedirectLogin, f.View())
	})

	t.Run("authenticated with items shows checkout", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
		assert.Equal(t, ViewCheckout, f.View())
	})

	t.Run("confirmation stays visible after cart cleared", func(t *testing.T) {
		creator := &stubCreator{}
		f := readyFlow(t, creator)
		require.NoError(t, f.Next(context.Background()))

		assert.Equal(t, StepConfirmation, f.Step())
		assert.Equal(t, ViewCheckout, f.View())
	})
}

func TestFlow_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at delivery", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
		assert.Equal(t, StepDelivery, f.Step())
	})

	t.Run("delivery requires address and method", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})

		assert.ErrorIs(t, f.Next(ctx), ErrMissingAddress)

		require.NoError(t, f.SelectAddress(testAddress))
		assert.ErrorIs(t, f.Next(ctx), ErrMissingDeliveryMethod)

		require.NoError(t, f.SelectDeliveryMethod(testMethod))
		require.NoError(t, f.Next(ctx))
		assert.Equal(t, StepPayment, f.Step())
	})

	t.Run("payment requires a payment method", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
		require.NoError(t, f.SelectAddress(testAddress))
		require.NoError(t, f.SelectDeliveryMethod(testMethod))
		require.NoError(t, f.Next(ctx))

		assert.ErrorIs(t, f.Next(ctx), ErrMissingPaymentMethod)
		assert.Equal(t, StepPayment, f.Step())
	})

	t.Run("prev only from payment", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
		assert.ErrorIs(t, f.Prev(), ErrInvalidTransition)

		require.NoError(t, f.SelectAddress(testAddress))
		require.NoError(t, f.SelectDeliveryMethod(testMethod))
		require.NoError(t, f.Next(ctx))
		require.NoError(t, f.Prev())
		assert.Equal(t, StepDelivery, f.Step())
	})

	t.Run("next past confirmation is refused", func(t *testing.T) {
		creator := &stubCreator{}
		f := readyFlow(t, creator)
		require.NoError(t, f.Next(ctx))

		assert.ErrorIs(t, f.Next(ctx), ErrFlowComplete)
		assert.ErrorIs(t, f.Prev(), ErrInvalidTransition)
	})

	t.Run("empty cart blocks advancement", func(t *testing.T) {
		empty := cart.NewStore(cart.NewMemoryStorage(), nil)
		f := NewFlow(empty, stubSession{id: 7, ok: true})
		require.NoError(t, f.SelectAddress(testAddress))
		require.NoError(t, f.SelectDeliveryMethod(testMethod))

		assert.ErrorIs(t, f.Next(ctx), ErrCartEmpty)
	})

	t.Run("unauthenticated blocks advancement", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{ok: false})
		require.NoError(t, f.SelectAddress(testAddress))
		require.NoError(t, f.SelectDeliveryMethod(testMethod))

		assert.ErrorIs(t, f.Next(ctx), ErrNotAuthenticated)
	})
}

func TestFlow_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success reaches confirmation and exposes the order", func(t *testing.T) {
		creator := &stubCreator{}
		f := readyFlow(t, creator)

		require.NoError(t, f.Next(ctx))

		assert.Equal(t, StepConfirmation, f.Step())
		assert.False(t, f.Processing())
		require.NotNil(t, f.Order())
		assert.Equal(t, "o1", f.Order().ID)
		assert.Equal(t, 1, creator.callCount())
	})

	t.Run("failure stays on payment with selections intact", func(t *testing.T) {
		creator := &stubCreator{err: errors.New("remote down")}
		f := readyFlow(t, creator)

		err := f.Next(ctx)
		require.Error(t, err)

		assert.Equal(t, StepPayment, f.Step())
		assert.False(t, f.Processing())
		assert.Nil(t, f.Order())

		// Selections survive, so the retry succeeds without re-entry.
		creator.err = nil
		require.NoError(t, f.Next(ctx))
		assert.Equal(t, StepConfirmation, f.Step())
	})

	t.Run("concurrent placement is refused, not queued", func(t *testing.T) {
		creator := &stubCreator{blockCh: make(chan struct{})}
		f := readyFlow(t, creator)

		done := make(chan error, 1)
		go func() { done <- f.PlaceOrder(ctx) }()

		// Wait for the first placement to take the processing flag.
		require.Eventually(t, f.Processing, time.Second, time.Millisecond)

		assert.ErrorIs(t, f.PlaceOrder(ctx), ErrProcessing)
		assert.ErrorIs(t, f.SelectAddress(testAddress), ErrProcessing)
		assert.ErrorIs(t, f.Prev(), ErrProcessing)

		close(creator.blockCh)
		require.NoError(t, <-done)
		assert.Equal(t, 1, creator.callCount())
	})

	t.Run("place order off the payment step is invalid", func(t *testing.T) {
		f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
		assert.ErrorIs(t, f.PlaceOrder(ctx), ErrInvalidTransition)
	})
}

func TestFlow_Quote(t *testing.T) {
	f := NewFlow(newFilledCart(t, nil), stubSession{id: 7, ok: true})
	require.NoError(t, f.SelectDeliveryMethod(testMethod))
	require.NoError(t, f.ApplyPromo(10))
	require.NoError(t, f.UseLoyaltyPoints(true, 100))

	got := f.Quote()

	assert.InDelta(t, 20.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, got.DeliveryFee, 1e-9)
	assert.InDelta(t, 2.0, got.PromoDiscount, 1e-9)
	// 100 points are worth 10 but loyalty is capped at 20% of subtotal.
	assert.InDelta(t, 4.0, got.LoyaltyDiscount, 1e-9)
	assert.InDelta(t, 19.0, got.Total, 1e-9)
}
