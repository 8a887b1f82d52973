package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
	"github.com/JaimeStill/docmatrix/pkg/logging"
	"github.com/JaimeStill/docmatrix/pkg/storage"
)

func newStore(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "blobs")

	sys, err := storage.New(&storage.Config{BasePath: dir}, logging.Discard())
	require.NoError(t, err)

	lc := lifecycle.New()
	require.NoError(t, sys.Start(lc))
	lc.WaitForStartup()

	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := storage.New(&storage.Config{}, logging.Discard())
	assert.Error(t, err)
}

func TestStart_CreatesDirectory(t *testing.T) {
	_, dir := newStore(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreRetrieve(t *testing.T) {
	sys, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "exports/7.txt", []byte("first")))
	require.NoError(t, sys.Store(ctx, "exports/7.txt", []byte("second")))

	data, err := sys.Retrieve(ctx, "exports/7.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRetrieve_Missing(t *testing.T) {
	sys, _ := newStore(t)

	_, err := sys.Retrieve(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	sys, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "documents/1/a.txt", []byte("x")))
	require.NoError(t, sys.Delete(ctx, "documents/1/a.txt"))

	ok, err := sys.Exists(ctx, "documents/1/a.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, "documents", "1"))
	assert.True(t, os.IsNotExist(err), "empty parent directory should be pruned")

	assert.NoError(t, sys.Delete(ctx, "documents/1/a.txt"), "delete is idempotent")
}

func TestInvalidKeys(t *testing.T) {
	sys, _ := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape.txt", "a/../../escape.txt", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, sys.Store(ctx, key, []byte("x")), storage.ErrInvalidKey)
			_, err := sys.Retrieve(ctx, key)
			assert.ErrorIs(t, err, storage.ErrInvalidKey)
			_, err = sys.Exists(ctx, key)
			assert.ErrorIs(t, err, storage.ErrInvalidKey)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "storage: key not found", storage.ErrNotFound.Error())
	assert.Equal(t, "storage: permission denied", storage.ErrPermissionDenied.Error())
	assert.Equal(t, "storage: invalid key", storage.ErrInvalidKey.Error())
}
