package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/", nopLogger{})
	require.NoError(t, err)

	res, err := store.Upload(context.Background(), []byte("%PDF-1.4"), "Passport Scan.PDF", "appointments/42")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.PublicID, "appointments/42/"))
	assert.True(t, strings.HasSuffix(res.PublicID, ".pdf"))
	assert.Equal(t, "/uploads/"+res.PublicID, res.URL)
	assert.Equal(t, int64(8), res.Size)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(context.Background(), res.PublicID))
	assert.ErrorIs(t, store.Delete(context.Background(), res.PublicID), ErrBlobNotFound)
}

func TestLocalStore_StaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "root"), "/uploads", nopLogger{})
	require.NoError(t, err)

	res, err := store.Upload(context.Background(), []byte("x"), "a.png", "../../etc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.PublicID, "etc/"))

	_, err = os.Stat(filepath.Join(dir, "root", filepath.FromSlash(res.PublicID)))
	assert.NoError(t, err)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads", nopLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Upload(ctx, []byte("x"), "a.png", "f")
	assert.ErrorIs(t, err, context.Canceled)
}
