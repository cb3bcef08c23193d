package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "landscape/abc.mp4", storage.Key("landscape", "abc.mp4"))
	assert.Equal(t, "portrait/abc.mp4", storage.Key("/portrait/", "/abc.mp4"))
	assert.Equal(t, "abc.png", storage.Key("", "abc.png"))
}

func newFilesystemPublisher(t *testing.T) *storage.FilesystemPublisher {
	publisher, err := storage.NewFilesystemPublisher(storage.FilesystemConfig{
		Root:    filepath.Join(t.TempDir(), "assets"),
		BaseURL: "http://localhost:8091/assets/",
	})
	require.NoError(t, err)

	return publisher
}

func TestFilesystemPublisher_Publish(t *testing.T) {
	publisher := newFilesystemPublisher(t)

	err := publisher.Publish(context.Background(), "landscape/abc.mp4", "video/mp4", strings.NewReader("remuxed"))
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(publisher.Root(), "landscape", "abc.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "remuxed", string(contents))
	assert.Equal(t, "http://localhost:8091/assets/landscape/abc.mp4", publisher.PublicURL("landscape/abc.mp4"))

	// No temporary files left behind
	entries, err := os.ReadDir(filepath.Join(publisher.Root(), "landscape"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFilesystemPublisher_LastWriterWins(t *testing.T) {
	publisher := newFilesystemPublisher(t)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, "other/abc.mp4", "video/mp4", strings.NewReader("first")))
	require.NoError(t, publisher.Publish(ctx, "other/abc.mp4", "video/mp4", strings.NewReader("second")))

	contents, err := os.ReadFile(filepath.Join(publisher.Root(), "other", "abc.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(contents))
}

func TestFilesystemPublisher_RejectsEscapingKeys(t *testing.T) {
	publisher := newFilesystemPublisher(t)

	for _, key := range []string{"", ".", "..", "../outside.mp4", "/etc/passwd"} {
		err := publisher.Publish(context.Background(), key, "video/mp4", strings.NewReader("x"))
		assert.Error(t, err, "key %q should be rejected", key)
	}
}
