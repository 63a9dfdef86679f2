// Package memory holds process-local stores used by default and in tests.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/bryanwahyu/critique/internal/domain/share"
)

// KVStore is an in-memory share.Store.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, share.ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Check satisfies the health checker interface.
func (s *KVStore) Check(ctx context.Context) error { return nil }
