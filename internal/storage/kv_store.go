// ABOUTME: Interface definition for key-value slot storage.
// ABOUTME: Defines the contract diary stores use to read and replace serialized values.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot name a storage slot.
var ErrInvalidKey = errors.New("invalid storage key")

// KVStore persists opaque values under string keys.
type KVStore interface {
	// Get returns the value stored under key. ok is false when no value exists.
	Get(key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates a KVStore for the named backend rooted at path.
// path is a directory for the file backend and a database file for sqlite;
// the memory backend ignores it.
func Open(backend, path string) (KVStore, error) {
	switch backend {
	case BackendFile, "":
		return NewFileKV(path)
	case BackendSQLite:
		return NewSQLiteKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite, or memory)", backend)
	}
}

// validateKey rejects empty keys and keys that could escape a directory.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
