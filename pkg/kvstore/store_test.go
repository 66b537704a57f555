package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("abc")))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	value[0] = 'x'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "sekretar:archive:v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "sekretar:archive:v1", []byte("[]")))
	value, err := store.Get(ctx, "sekretar:archive:v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)

	// Key separators must not escape the base directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sekretar_archive_v1.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "sekretar_archive_v1.json"), store.resolve("sekretar:archive:v1"))

	require.NoError(t, store.Delete(ctx, "sekretar:archive:v1"))
	require.NoError(t, store.Delete(ctx, "sekretar:archive:v1"))
	_, err = store.Get(ctx, "sekretar:archive:v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisWithClient(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("value")))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
