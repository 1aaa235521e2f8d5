// ABOUTME: File-backed key-value storage, one YAML file per key.
// ABOUTME: Values are replaced atomically so a crash never leaves a torn slot.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileKV stores each key as <dir>/<key>.yaml.
type FileKV struct {
	dir string
}

// NewFileKV creates a file-backed store rooted at dir. The directory is
// created lazily on first write.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("file storage requires a directory")
	}
	return &FileKV{dir: dir}, nil
}

// Path returns the file that holds key.
func (s *FileKV) Path(key string) string {
	return filepath.Join(s.dir, key+".yaml")
}

// Get reads the value stored under key.
func (s *FileKV) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set atomically replaces the value stored under key.
func (s *FileKV) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}
	if err := renameio.WriteFile(s.Path(key), value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *FileKV) Close() error {
	return nil
}
