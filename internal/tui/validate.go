// ABOUTME: Storage validation for the setup wizard.
// ABOUTME: Opens the chosen backend and reads the diary slot once to prove it is usable.
package tui

import (
	"fmt"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/storage"
)

// ValidateStorage opens backend at path (or its default location when path is
// empty) and reads key. It never writes the slot, but opening the sqlite
// backend creates its directory, database file and kv table.
func ValidateStorage(backend, path, key string) error {
	cfg := config.Config{Storage: config.StorageConfig{Backend: backend, Path: path, Key: key}}

	location, err := cfg.GetStoragePath()
	if err != nil {
		return err
	}
	kv, err := storage.Open(cfg.GetBackend(), location)
	if err != nil {
		return fmt.Errorf("cannot open %s storage at %s: %w", cfg.GetBackend(), location, err)
	}
	defer func() { _ = kv.Close() }()

	if _, _, err := kv.Get(cfg.GetKey()); err != nil {
		return fmt.Errorf("cannot read slot %q: %w", cfg.GetKey(), err)
	}
	return nil
}
