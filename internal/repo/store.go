// Package repo contains all persistence logic for the trip planner.
// The whole Database aggregate lives under one key in a KeyStore; the
// drivers in this package (memory, SQLite, Postgres) only know how to read,
// overwrite, and delete that key. No business rules live here.
package repo

import (
	"context"
	"sync"
)

// KeyStore is a durable string-keyed slot store. Set overwrites the whole
// value in a single write; there are no partial updates.
type KeyStore interface {
	// Get returns the value stored under key. found is false, with a nil
	// error, when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a KeyStore held in process memory. It backs tests and the
// "memory" store driver, where nothing outlives the process.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
