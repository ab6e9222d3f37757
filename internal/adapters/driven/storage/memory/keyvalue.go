// Package memory provides in-memory adapter implementations for testing.
package memory

import (
	"sync"

	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
)

// Ensure KeyValueStore implements the interface.
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is an in-memory implementation of driven.KeyValueStore.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKeyValueStore creates a new in-memory key-value store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		values: make(map[string][]byte),
	}
}

// Get retrieves a value by key.
func (s *KeyValueStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true
}

// Set stores a value.
func (s *KeyValueStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete removes a key.
func (s *KeyValueStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *KeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
