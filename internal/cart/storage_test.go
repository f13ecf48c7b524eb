package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Set(StorageKey, []byte(`[{"id":"p1"}]`)))

		data, ok, err := storage.Get(StorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `[{"id":"p1"}]`, string(data))
	})

	t.Run("Absent Key", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		_, ok, err := storage.Get("nothing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Set(StorageKey, []byte("[]")))
		require.NoError(t, storage.Delete(StorageKey))
		require.NoError(t, storage.Delete(StorageKey))

		_, ok, err := storage.Get(StorageKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Empty Dir Rejected", func(t *testing.T) {
		_, err := NewFileStorage("")
		assert.Error(t, err)
	})

	t.Run("Overwrite Replaces Value", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Set(StorageKey, []byte("old")))
		require.NoError(t, storage.Set(StorageKey, []byte("new")))

		data, ok, err := storage.Get(StorageKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "new", string(data))
	})
}
