package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	t.Run("Upload writes object and returns URL", func(t *testing.T) {
		url, err := store.Upload(context.Background(), "product-images", "a.png", []byte("data"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/files/product-images/a.png", url)

		data, err := os.ReadFile(filepath.Join(store.Root(), "product-images", "a.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("Remove deletes object", func(t *testing.T) {
		require.NoError(t, store.Remove(context.Background(), "product-images", "a.png"))
		_, err := os.Stat(filepath.Join(store.Root(), "product-images", "a.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Remove missing object is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(context.Background(), "product-images", "missing.png"))
	})

	t.Run("Rejects keys escaping the root", func(t *testing.T) {
		_, err := store.Upload(context.Background(), "product-images", "../../etc/passwd", []byte("x"))
		assert.Error(t, err)
	})

	t.Run("Rejects empty bucket or key", func(t *testing.T) {
		_, err := store.Upload(context.Background(), "", "a.png", []byte("x"))
		assert.Error(t, err)
		assert.Error(t, store.Remove(context.Background(), "product-images", ""))
	})
}
