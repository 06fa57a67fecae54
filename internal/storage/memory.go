package storage

import (
	"sync"

	"skillboard/internal/skillboard"
)

// MemoryStorage keeps documents in a map. Nothing survives the process,
// which makes it useful for tests and throwaway sessions.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

var _ skillboard.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{docs: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, data...), true, nil
}

func (m *MemoryStorage) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = append([]byte{}, data...)
	return nil
}

// ValidateSetup always succeeds for in-memory storage.
func (m *MemoryStorage) ValidateSetup() error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
