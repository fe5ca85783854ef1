package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Backend with lazy TTL expiry. Expired entries are
// dropped on the next access to their key.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

type memEntry struct {
	payload   []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memEntry)}
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	ent, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !ent.expiresAt.IsZero() && time.Now().After(ent.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return ent.payload, nil
}

// Set implements Backend.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	ent := memEntry{payload: payload}
	if ttl > 0 {
		ent.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = ent
	m.mu.Unlock()
	return nil
}

// Clear implements Backend.
func (m *Memory) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern == "" || pattern == "*" {
		m.entries = make(map[string]memEntry)
		return nil
	}

	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
