package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hbomb79/Tubely/pkg/logger"
)

var log = logger.Get("Storage")

type (
	// Stage tags a staged file with the point of the ingestion
	// pipeline which produced it.
	Stage int

	StagingConfig struct {
		Directory string `yaml:"staging_dir" env:"STAGING_DIR" env-default:"/tmp/tubely"`
	}

	// StagedFile is a file on the local file system owned by a single
	// ingestion run. It must be removed once that run terminates.
	StagedFile struct {
		Path  string
		Stage Stage
	}

	// Staging manages the temporary directory used to hold in-flight
	// uploads. Paths within it are kept apart purely by the uniqueness of
	// the names supplied by callers.
	Staging struct {
		root string
	}
)

const (
	StageRaw Stage = iota
	StageRemuxed
)

func (s Stage) String() string {
	switch s {
	case StageRaw:
		return "raw"
	case StageRemuxed:
		return "remuxed"
	}

	return fmt.Sprintf("Stage(%d)", int(s))
}

// NewStaging constructs a Staging rooted at the configured directory,
// creating the directory if it does not exist. An error is returned if
// the path exists but is not a directory.
func NewStaging(config StagingConfig) (*Staging, error) {
	if info, err := os.Stat(config.Directory); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("staging path '%s' is not a directory", config.Directory)
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(config.Directory, 0o750); err != nil {
			return nil, fmt.Errorf("staging path '%s' could not be created: %w", config.Directory, err)
		}
	} else {
		return nil, fmt.Errorf("staging path '%s' could not be accessed: %w", config.Directory, err)
	}

	return &Staging{root: config.Directory}, nil
}

func (staging *Staging) Root() string { return staging.root }

// Path returns the location within the staging area for the given file name.
func (staging *Staging) Path(fileName string) string {
	return filepath.Join(staging.root, filepath.Base(fileName))
}

// Write copies the contents of the reader to a new file within the staging area. The
// file must not already exist. A partially written file is removed before returning an error.
func (staging *Staging) Write(fileName string, contents io.Reader) (*StagedFile, error) {
	path := staging.Path(fileName)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file %s: %w", path, err)
	}

	if _, err := io.Copy(file, contents); err != nil {
		file.Close()
		staging.Remove(path)
		return nil, fmt.Errorf("failed to write staged file %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		staging.Remove(path)
		return nil, fmt.Errorf("failed to flush staged file %s: %w", path, err)
	}

	return &StagedFile{Path: path, Stage: StageRaw}, nil
}

// Remove deletes the file at the given path if it exists. Failures are
// logged rather than returned, as cleanup is best-effort.
func (staging *Staging) Remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Failed to remove staged file %s: %v\n", path, err)
		return
	}

	log.Verbosef("Removed staged file %s\n", path)
}
