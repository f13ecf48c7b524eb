package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"foodbasket-be/internal/order"
	"foodbasket-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// --- Helpers ---

func testProduct(id string, price float64) product.Product {
	return product.Product{ID: id, Name: "Product " + id, Price: price, Image: id + ".jpg"}
}

// --- Tests ---

func TestStore_AddProduct(t *testing.T) {
	t.Run("adds new line item", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)

		err := s.AddProduct(testProduct("p1", 2.5), 2)
		require.NoError(t, err)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].Product.ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("same product increments quantity", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)

		require.NoError(t, s.AddProduct(testProduct("p1", 2.5), 1))
		require.NoError(t, s.AddProduct(testProduct("p1", 2.5), 3))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 4, items[0].Quantity)
		assert.Equal(t, 4, s.ItemCount())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)

		assert.ErrorIs(t, s.AddProduct(testProduct("p1", 2.5), 0), ErrInvalidQuantity)
		assert.ErrorIs(t, s.AddProduct(testProduct("p1", 2.5), -1), ErrInvalidQuantity)
		assert.Empty(t, s.Items())
	})
}

func TestStore_RemoveAndUpdate(t *testing.T) {
	t.Run("remove deletes the line", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)
		require.NoError(t, s.AddProduct(testProduct("p1", 1), 1))
		require.NoError(t, s.AddProduct(testProduct("p2", 2), 1))

		s.Remove("p1")

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p2", items[0].Product.ID)
	})

	t.Run("remove absent product is a no-op", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)
		require.NoError(t, s.AddProduct(testProduct("p1", 1), 1))

		s.Remove("nope")
		assert.Len(t, s.Items(), 1)
	})

	t.Run("update quantity overwrites", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)
		require.NoError(t, s.AddProduct(testProduct("p1", 1), 1))

		s.UpdateQuantity("p1", 5)
		assert.Equal(t, 5, s.ItemCount())
	})

	t.Run("update to zero removes", func(t *testing.T) {
		s := NewStore(NewMemoryStorage(), nil)
		require.NoError(t, s.AddProduct(testProduct("p1", 1), 3))

		s.UpdateQuantity("p1", 0)
		assert.Empty(t, s.Items())
	})
}

func TestStore_Subtotal(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil)
	require.NoError(t, s.AddProduct(testProduct("p1", 2.5), 2))
	require.NoError(t, s.AddProduct(testProduct("p2", 10), 1))

	assert.InDelta(t, 15.0, s.Subtotal(), 1e-9)
}

func TestStore_Persistence(t *testing.T) {
	t.Run("hydrates from storage", func(t *testing.T) {
		storage := NewMemoryStorage()

		first := NewStore(storage, nil)
		require.NoError(t, first.AddProduct(testProduct("p1", 3), 2))

		second := NewStore(storage, nil)
		items := second.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].Product.ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("corrupt payload is discarded silently", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Set(StorageKey, []byte("{not json")))

		s := NewStore(storage, nil)
		assert.Empty(t, s.Items())

		// The bad payload is gone from storage too.
		_, ok, err := storage.Get(StorageKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("clear removes persisted copy", func(t *testing.T) {
		storage := NewMemoryStorage()
		s := NewStore(storage, nil)
		require.NoError(t, s.AddProduct(testProduct("p1", 3), 1))

		s.Clear()

		_, ok, err := storage.Get(StorageKey)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, s.Items())
	})
}

func TestStore_Checkout(t *testing.T) {
	ctx := context.Background()
	address := order.DeliveryAddress{Street: "1 Main St", City: "Springfield"}
	method := order.DeliveryMethod{ID: "standard", Name: "Standard", Price: 5, EstimatedDays: 3}
	payMethod := order.PaymentMethod{ID: "wallet", Name: "Wallet"}

	t.Run("empty cart is refused", func(t *testing.T) {
		creator := new(MockCreator)
		s := NewStore(NewMemoryStorage(), creator)

		_, err := s.Checkout(ctx, 1, address, method, payMethod, nil)
		assert.ErrorIs(t, err, ErrEmptyCart)
		creator.AssertNotCalled(t, "Create")
	})

	t.Run("success clears the cart", func(t *testing.T) {
		creator := new(MockCreator)
		storage := NewMemoryStorage()
		s := NewStore(storage, creator)
		require.NoError(t, s.AddProduct(testProduct("p1", 4), 5))

		placed := &order.Order{ID: "o1", OrderNumber: "ORD-1"}
		creator.On("Create", ctx, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.UserID == 7 &&
				len(in.Items) == 1 &&
				in.Items[0].Quantity == 5 &&
				in.Subtotal == 20 &&
				in.DeliveryFee == 5 &&
				in.Total == 25
		})).Return(placed, nil)

		got, err := s.Checkout(ctx, 7, address, method, payMethod, nil)
		require.NoError(t, err)
		assert.Equal(t, "o1", got.ID)
		assert.Empty(t, s.Items())

		_, ok, _ := storage.Get(StorageKey)
		assert.False(t, ok)
		creator.AssertExpectations(t)
	})

	t.Run("failure preserves the cart", func(t *testing.T) {
		creator := new(MockCreator)
		storage := NewMemoryStorage()
		s := NewStore(storage, creator)
		require.NoError(t, s.AddProduct(testProduct("p1", 4), 2))

		creator.On("Create", ctx, mock.Anything).Return(nil, errors.New("remote down"))

		_, err := s.Checkout(ctx, 7, address, method, payMethod, nil)
		require.Error(t, err)

		assert.Len(t, s.Items(), 1)
		assert.Equal(t, 2, s.ItemCount())

		// Persisted copy survives too.
		data, ok, _ := storage.Get(StorageKey)
		require.True(t, ok)
		var items []LineItem
		require.NoError(t, json.Unmarshal(data, &items))
		assert.Len(t, items, 1)
	})
}
