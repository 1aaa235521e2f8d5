// ABOUTME: In-memory key-value storage for tests and ephemeral sessions.
// ABOUTME: Copies values on the way in and out and counts writes per key.
package storage

import "sync"

// MemoryKV keeps slots in a map. It is safe for concurrent use.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
	writes map[string]int
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string][]byte),
		writes: make(map[string]int),
	}
}

// Get returns a copy of the value stored under key.
func (s *MemoryKV) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (s *MemoryKV) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte{}, value...)
	s.writes[key]++
	return nil
}

// Writes returns how many times key has been set.
func (s *MemoryKV) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

// Close is a no-op.
func (s *MemoryKV) Close() error {
	return nil
}
