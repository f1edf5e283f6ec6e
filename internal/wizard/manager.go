package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the live wizard sessions, keyed by session id. Sessions
// idle past the TTL are dropped by the sweep loop; an abandoned order
// simply disappears, it is never persisted.
type Manager struct {
	tables TableLister
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager(tables TableLister, ttl time.Duration) *Manager {
	return &Manager{
		tables:   tables,
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Begin creates a new session at the hall step with an empty order.
func (m *Manager) Begin() *Session {
	s := newSession(m.tables)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Run sweeps expired sessions until the context is canceled.
// Call as a goroutine: go manager.Run(ctx).
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > m.ttl {
			delete(m.sessions, id)
		}
	}
}
