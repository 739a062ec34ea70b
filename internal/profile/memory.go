package profile

import (
	"context"
	"sync"

	"shopmind/internal/style"
)

// MemoryStore keeps profiles in process memory. Used by the chat REPL and
// in tests; profiles do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]style.Profile
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]style.Profile)}
}

func (m *MemoryStore) Load(_ context.Context, profileID string) (style.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[profileID]; ok {
		return p.Clone(), nil
	}
	return style.DefaultProfile(), nil
}

func (m *MemoryStore) Save(_ context.Context, profileID string, p style.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profileID] = p.Clone()
	return nil
}
