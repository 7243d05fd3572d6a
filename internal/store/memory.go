package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store used in tests and as the fallback
// when Redis is unreachable at startup.  Visit state then survives
// reloads only as long as the process does, which mirrors how the
// rest of the service degrades when Redis is absent.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) key(visitID, key string) string { return visitID + ":" + key }

func (m *Memory) Get(_ context.Context, visitID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[m.key(visitID, key)], nil
}

func (m *Memory) Set(_ context.Context, visitID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key(visitID, key)] = value
	return nil
}

func (m *Memory) Clear(_ context.Context, visitID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, m.key(visitID, k))
	}
	return nil
}
