package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := "pretend this is a PDF"
	storagePath, size, err := store.Upload(ctx, "acme", "handout.pdf", "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	// Stored path is tenant-prefixed and keeps the original extension
	assert.True(t, strings.HasPrefix(storagePath, "attachments/acme/"), storagePath)
	assert.True(t, strings.HasSuffix(storagePath, ".pdf"), storagePath)

	reader, err := store.Download(ctx, storagePath)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	require.NoError(t, store.Delete(ctx, storagePath))

	_, err = store.Download(ctx, storagePath)
	assert.Error(t, err)
}

func TestLocalStorage_UploadsGetUniquePaths(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, _, err := store.Upload(ctx, "acme", "same.txt", "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	second, _, err := store.Upload(ctx, "acme", "same.txt", "text/plain", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorage_DeleteMissingFileIsNoop(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "attachments/acme/missing.pdf"))
}

func TestNewStorage_ModeSelection(t *testing.T) {
	logger := zap.NewNop()

	t.Run("local", func(t *testing.T) {
		store, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
		require.NoError(t, err)
		assert.IsType(t, &storage.LocalStorage{}, store)
	})

	t.Run("azure without connection string", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "azure"}, logger)
		assert.Error(t, err)
	})

	t.Run("unsupported mode", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
		assert.Error(t, err)
	})
}
