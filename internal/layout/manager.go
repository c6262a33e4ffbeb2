package layout

import (
	"context"
	"sync"
	"time"

	"seatmap/shared/failure"
	"seatmap/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Manager is the registry of live editing sessions. Idle sessions expire
// after the configured TTL; expired entries are swept in the background and
// also rejected on access so a sweep race never hands out a dead session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	scene    Scene
	ttl      time.Duration
}

func NewManager(scene Scene, ttl time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		scene:    scene,
		ttl:      ttl,
	}
}

// Open creates a new empty session and registers it.
func (m *Manager) Open() *Session {
	session := NewSession(uuid.NewString(), m.scene)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID()] = session

	return session
}

// Get returns the session with the given id, or a not-found failure when it
// never existed or has expired.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, failure.NotFound("layout session not found") // nolint:wrapcheck
	}

	if m.expired(session) {
		m.Close(id)

		return nil, failure.NotFound("layout session not found") // nolint:wrapcheck
	}

	return session, nil
}

// Close removes a session from the registry.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0

	for id, session := range m.sessions {
		if m.expired(session) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Run sweeps expired sessions periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Layout session sweeper stopped")

			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				log.Info().Int("removed", removed).Msg("Swept expired layout sessions")
			}
		}
	}
}

func (m *Manager) expired(session *Session) bool {
	if m.ttl <= 0 {
		return false
	}

	return timezone.Now().Sub(session.LastAccess()) > m.ttl
}
