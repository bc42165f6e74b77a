// Package file persists the hardware-configuration bundle as a JSON file
// on the local filesystem.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labscript-ai/labscript/pkg/domain"
)

const entryName = "hardware_config.json"

// Store implements ports.ConfigStore using a single file under BasePath.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath. An empty basePath defaults to
// ".labscript".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = ".labscript"
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path() string {
	return filepath.Join(s.BasePath, entryName)
}

// Save writes the bundle atomically: temp file, fsync, rename. A crash
// mid-write leaves either the old entry or the new one, never a partial
// file.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-config-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path()); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Load reads the bundle.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// Clear removes the entry. A missing file is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	return nil
}
