package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beplus/beplus/internal/secrets"
)

func TestStorePutGetDelete(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "authToken", "tok-123"))

	got, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)

	info, err := os.Stat(filepath.Join(root, "authToken"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())

	require.NoError(t, store.Delete(ctx, "authToken"))
	_, err = store.Get(ctx, "authToken")
	require.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestStoreGetMissingIsNotFound(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "authToken")
	require.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestStoreTrimsTrailingNewline(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "authToken"), []byte("tok\n"), 0o600))

	got, err := NewStore(root).Get(context.Background(), "authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestStoreRejectsEscapingKeys(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "   ", "../outside", "/etc/passwd", "."} {
		t.Run(key, func(t *testing.T) {
			require.Error(t, store.Put(ctx, key, "v"))
			_, err := store.Get(ctx, key)
			require.Error(t, err)
			require.NotErrorIs(t, err, secrets.ErrNotFound)
		})
	}
}

func TestStoreDeleteMissingIsNoop(t *testing.T) {
	require.NoError(t, NewStore(t.TempDir()).Delete(context.Background(), "authToken"))
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(t.TempDir()).Get(ctx, "authToken")
	require.ErrorIs(t, err, context.Canceled)
}
