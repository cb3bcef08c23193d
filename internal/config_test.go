package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USERNAME", "tubely")
	t.Setenv("DB_PASSWORD", "tubely")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_BACKEND", "filesystem")
	t.Setenv("STAGING_DIR", "~/tubely-staging")

	config, err := LoadConfig("")
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, storage.BackendFilesystem, config.StorageBackend)
	assert.Equal(t, filepath.Join(home, "tubely-staging"), config.Staging.Directory)
	assert.Equal(t, int64(1<<30), config.Ingest.MaxVideoSize)
	assert.Equal(t, int64(10<<20), config.Ingest.MaxThumbnailSize)
	assert.Equal(t, "0.0.0.0:8080", config.RestConfig.HostAddr)
	assert.Equal(t, "ffmpeg", config.Format.FfmpegBinPath)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadConfig_FromFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage_backend: s3
s3:
  bucket: tubely-videos
  region: ap-southeast-2
log_level: debug
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tubely-videos", config.S3.Bucket)
	assert.Equal(t, "ap-southeast-2", config.S3.Region)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		summary string
		env     map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "floppy"}},
		{"s3 without bucket", map[string]string{"STORAGE_BACKEND": "s3"}},
		{"short secret", map[string]string{"STORAGE_BACKEND": "filesystem", "JWT_SECRET": "short"}},
		{"unknown log level", map[string]string{"STORAGE_BACKEND": "filesystem", "LOG_LEVEL": "loud"}},
	}

	for _, test := range tests {
		t.Run(test.summary, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}
