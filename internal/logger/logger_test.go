package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL_LazyInit(t *testing.T) {
	log = nil
	l := L()
	require.NotNil(t, l)
}

func TestRequestIDContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", RequestIDFrom(ctx))
	})

	t.Run("missing id", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFrom(context.Background()))
	})
}

func TestFromCtx(t *testing.T) {
	t.Run("without request id returns global", func(t *testing.T) {
		assert.NotNil(t, FromCtx(context.Background()))
	})

	t.Run("with request id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-456")
		assert.NotNil(t, FromCtx(ctx))
	})
}
