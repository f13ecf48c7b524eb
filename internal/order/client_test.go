package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCreator_Create(t *testing.T) {
	ctx := context.Background()

	input := CreateOrderInput{
		UserID: 7,
		Items: []CreateItem{
			{ProductID: "p1", Name: "Apples", Price: 10, Quantity: 2},
		},
		Subtotal: 20,
		Total:    25,
	}

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/orders", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

			var got CreateOrderInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, uint(7), got.UserID)
			assert.Len(t, got.Items, 1)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Order{ID: "order-1", OrderNumber: "ORD-1", Status: StatusPending})
		}))
		defer srv.Close()

		creator := NewHTTPCreator(srv.URL, "secret")
		o, err := creator.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "order-1", o.ID)
	})

	t.Run("Non-2xx is a remote error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		creator := NewHTTPCreator(srv.URL, "")
		_, err := creator.Create(ctx, input)
		assert.ErrorIs(t, err, ErrRemote)
	})

	t.Run("Malformed response is a remote error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		creator := NewHTTPCreator(srv.URL, "")
		_, err := creator.Create(ctx, input)
		assert.ErrorIs(t, err, ErrRemote)
	})

	t.Run("Breaker opens after consecutive failures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		creator := NewHTTPCreator(srv.URL, "")
		for i := 0; i < 5; i++ {
			_, err := creator.Create(ctx, input)
			assert.ErrorIs(t, err, ErrRemote)
		}

		// The sixth call is rejected without reaching the server.
		_, err := creator.Create(ctx, input)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrRemote)
	})
}
