package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Dismissals implementation, used when no Redis
// address is configured and in tests. Entries expire like their Redis
// counterparts but do not survive a restart.
type Memory struct {
	mu      sync.Mutex
	expires map[string]time.Time
	ttl     time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		expires: make(map[string]time.Time),
		ttl:     ttl,
	}
}

func (m *Memory) Dismiss(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[id] = time.Now().Add(m.ttl)
	return nil
}

func (m *Memory) IsDismissed(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deadline, ok := m.expires[id]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(m.expires, id)
		return false, nil
	}
	return true, nil
}
