package blobstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/b", []byte("hello")))

		data, err := store.Get(ctx, "a/b")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "key", []byte("one")))
		require.NoError(t, store.Put(ctx, "key", []byte("two")))

		data, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), data)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))

		_, err := store.Get(ctx, "gone")
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting again is fine.
		require.NoError(t, store.Delete(ctx, "gone"))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snap/001", []byte("1")))
		require.NoError(t, store.Put(ctx, "snap/002", []byte("2")))
		require.NoError(t, store.Put(ctx, "other/003", []byte("3")))

		names, err := store.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/001", "snap/002"}, names)
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "immutable", []byte("abc")))

		data, err := store.Get(ctx, "immutable")
		require.NoError(t, err)
		data[0] = 'z'

		again, err := store.Get(ctx, "immutable")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreListEmptyRoot(t *testing.T) {
	store := NewLocalStore(t.TempDir() + "/never-created")
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				name := fmt.Sprintf("blob-%d-%d", n, j)
				assert.NoError(t, store.Put(ctx, name, []byte(name)))

				data, err := store.Get(ctx, name)
				assert.NoError(t, err)
				assert.Equal(t, []byte(name), data)
			}
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx, "blob-")
	require.NoError(t, err)
	assert.Len(t, names, 400)
}
