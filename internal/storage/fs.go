package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type (
	FilesystemConfig struct {
		Root    string `yaml:"assets_dir" env:"ASSETS_DIR" env-default:"./assets"`
		BaseURL string `yaml:"assets_base_url" env:"ASSETS_BASE_URL" env-default:"http://localhost:8080/assets"`
	}

	// FilesystemPublisher publishes objects to a directory on the local file
	// system, which is expected to be served statically at BaseURL.
	FilesystemPublisher struct {
		root    string
		baseURL string
	}
)

func NewFilesystemPublisher(cfg FilesystemConfig) (*FilesystemPublisher, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory %s: %w", cfg.Root, err)
	}

	return &FilesystemPublisher{root: cfg.Root, baseURL: cfg.BaseURL}, nil
}

func (publisher *FilesystemPublisher) Root() string { return publisher.root }

// Publish writes the body to a temporary file alongside the destination
// and renames it in to place, so readers never observe a partial object.
func (publisher *FilesystemPublisher) Publish(_ context.Context, key string, _ string, body io.Reader) error {
	destination, err := publisher.pathForKey(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destination), ".publish-*")
	if err != nil {
		return fmt.Errorf("failed to create file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions of %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("failed to move %s in to place: %w", key, err)
	}

	log.Infof("Published %s to %s\n", key, destination)
	return nil
}

func (publisher *FilesystemPublisher) PublicURL(key string) string {
	return joinURL(publisher.baseURL, key)
}

func (publisher *FilesystemPublisher) pathForKey(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if key == "" || cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("object key '%s' is not valid", key)
	}

	return filepath.Join(publisher.root, cleaned), nil
}
