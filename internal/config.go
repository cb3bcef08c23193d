package internal

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Tubely/internal/api"
	"github.com/hbomb79/Tubely/internal/api/auth"
	"github.com/hbomb79/Tubely/internal/database"
	"github.com/hbomb79/Tubely/internal/ffmpeg"
	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// TubelyConfig is the struct used to contain the
// various user config supplied by file, environment
// or manually inside the code.
type TubelyConfig struct {
	RestConfig     api.RestConfig           `yaml:"api"`
	AuthConfig     auth.Config              `yaml:"auth"`
	Database       database.Config          `yaml:"database"`
	Format         ffmpeg.Config            `yaml:"ffmpeg"`
	Ingest         ingest.Config            `yaml:"ingest"`
	Staging        storage.StagingConfig    `yaml:"staging"`
	StorageBackend storage.Backend          `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"s3" validate:"oneof=s3 filesystem"`
	S3             storage.S3Config         `yaml:"s3"`
	Assets         storage.FilesystemConfig `yaml:"assets"`
	LogLevel       string                   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=verbose debug info warn warning error fatal"`
}

// LoadConfig loads the configuration for Tubely. Any '.env' file found in the
// working directory is loaded in to the environment first. If a configPath is
// provided, the YAML file at that path is read (with environment variables
// taking precedence), otherwise the configuration is read from the environment alone.
func LoadConfig(configPath string) (*TubelyConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &TubelyConfig{}
	if configPath != "" {
		path, err := homedir.Expand(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path '%s': %w", configPath, err)
		}

		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to load configuration from '%s': %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if err := config.expandPaths(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("configuration is invalid: %w", err)
	}

	if config.StorageBackend == storage.BackendS3 && config.S3.Bucket == "" {
		return nil, errors.New("configuration is invalid: S3_BUCKET is required when using the s3 storage backend")
	}

	return config, nil
}

// expandPaths resolves any leading '~' in the directories
// referenced by the configuration.
func (config *TubelyConfig) expandPaths() error {
	for _, path := range []*string{&config.Staging.Directory, &config.Assets.Root, &config.Format.FfmpegBinPath, &config.Format.FfprobeBinPath} {
		expanded, err := homedir.Expand(*path)
		if err != nil {
			return fmt.Errorf("failed to expand path '%s': %w", *path, err)
		}

		*path = expanded
	}

	return nil
}
