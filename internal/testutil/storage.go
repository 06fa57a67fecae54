package testutil

import (
	"errors"
	"sync"

	"skillboard/internal/skillboard"
	"skillboard/internal/storage"
)

// ErrInjected is the failure FaultyStorage reports.
var ErrInjected = errors.New("injected storage failure")

// NewTestStorage creates an empty in-memory storage.
func NewTestStorage() *storage.MemoryStorage {
	return storage.NewMemoryStorage()
}

// FaultyStorage wraps a Storage and fails reads or writes of chosen keys.
type FaultyStorage struct {
	skillboard.Storage

	mu          sync.Mutex
	failReads   map[string]bool
	failWrites  map[string]bool
	writeCounts map[string]int
}

func NewFaultyStorage(inner skillboard.Storage) *FaultyStorage {
	return &FaultyStorage{
		Storage:     inner,
		failReads:   make(map[string]bool),
		failWrites:  make(map[string]bool),
		writeCounts: make(map[string]int),
	}
}

// FailReads makes every Read of key fail until cleared.
func (f *FaultyStorage) FailReads(key string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads[key] = fail
}

// FailWrites makes every Write of key fail until cleared.
func (f *FaultyStorage) FailWrites(key string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites[key] = fail
}

// Writes returns how many successful writes key has received.
func (f *FaultyStorage) Writes(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeCounts[key]
}

func (f *FaultyStorage) Read(key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failReads[key]
	f.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return f.Storage.Read(key)
}

func (f *FaultyStorage) Write(key string, data []byte) error {
	f.mu.Lock()
	fail := f.failWrites[key]
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	if err := f.Storage.Write(key, data); err != nil {
		return err
	}
	f.mu.Lock()
	f.writeCounts[key]++
	f.mu.Unlock()
	return nil
}
