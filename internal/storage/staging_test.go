package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("test: read failure") }

func TestNewStaging_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "staging")

	staging, err := storage.NewStaging(storage.StagingConfig{Directory: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, staging.Root())
	assert.DirExists(t, dir)
}

func TestNewStaging_RejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := storage.NewStaging(storage.StagingConfig{Directory: file})
	assert.Error(t, err)
}

func TestStaging_WriteAndRemove(t *testing.T) {
	staging, err := storage.NewStaging(storage.StagingConfig{Directory: t.TempDir()})
	require.NoError(t, err)

	staged, err := staging.Write("abc.mp4", strings.NewReader("video bytes"))
	require.NoError(t, err)
	assert.Equal(t, storage.StageRaw, staged.Stage)
	assert.Equal(t, filepath.Join(staging.Root(), "abc.mp4"), staged.Path)

	contents, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(contents))

	staging.Remove(staged.Path)
	assert.NoFileExists(t, staged.Path)

	// Removing a missing file is a no-op
	staging.Remove(staged.Path)
}

func TestStaging_WriteRefusesExistingFile(t *testing.T) {
	staging, err := storage.NewStaging(storage.StagingConfig{Directory: t.TempDir()})
	require.NoError(t, err)

	_, err = staging.Write("abc.mp4", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = staging.Write("abc.mp4", strings.NewReader("second"))
	assert.Error(t, err)

	contents, _ := os.ReadFile(staging.Path("abc.mp4"))
	assert.Equal(t, "first", string(contents))
}

func TestStaging_WriteFailureLeavesNoFile(t *testing.T) {
	staging, err := storage.NewStaging(storage.StagingConfig{Directory: t.TempDir()})
	require.NoError(t, err)

	_, err = staging.Write("abc.mp4", failingReader{})
	assert.Error(t, err)
	assert.NoFileExists(t, staging.Path("abc.mp4"))
}

func TestStaging_PathCannotEscapeRoot(t *testing.T) {
	staging, err := storage.NewStaging(storage.StagingConfig{Directory: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(staging.Root(), "passwd"), staging.Path("../../etc/passwd"))
}

func TestRandomName_Format(t *testing.T) {
	name, err := storage.RandomName()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), name)
}

func TestRandomName_NoCollisions(t *testing.T) {
	const workers, perWorker = 8, 2_500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	wg := sync.WaitGroup{}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				name, err := storage.RandomName()
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				seen[name] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}
