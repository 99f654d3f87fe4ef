package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
	"github.com/omok-games/fiverow/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// Manager handles game session lifecycle.
type Manager struct {
	sessions    map[string]*service.Session
	persistence Persistence
	mu          sync.RWMutex
}

// NewManager creates a new session manager without persistence.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager backed by the
// given persistence layer.
func NewManagerWithPersistence(persistence Persistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session with the given ID and configuration. An
// empty ID asks the manager to generate one. The session starts with a
// fresh game in the playing phase.
func (m *Manager) Create(id string, config *engine.Config) (*service.Session, error) {
	if id == "" {
		id = generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	coord, err := coordinator.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}
	if err := coord.StartNewGame(); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	sess := &service.Session{
		ID:             id,
		Coordinator:    coord,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[strings.ToLower(id)] = sess

	if m.persistence != nil {
		if err := m.persistence.Save(sess); err != nil {
			log.Warn().Err(err).Str("session", id).Msg("failed to persist new session")
		}
	}

	return sess, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to the
// persistence layer when it is not in memory.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return sess, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		sess, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = sess
		m.mu.Unlock()

		return sess, nil
	}

	return nil, ErrSessionNotFound
}

// List returns all active sessions.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session from memory and persistence.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.sessions[lowerID]
	delete(m.sessions, lowerID)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory removes a session from memory only.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session. The
// write happens under the session lock so concurrent saves see a
// consistent timestamp.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.RLock()
	sess, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	sess.Lock()
	sess.LastAccessedAt = time.Now()
	sess.Unlock()
	return nil
}

// Save persists a specific session.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sess, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(sess)
}

// CleanupExpiredSessions removes sessions that have not been accessed
// within maxAge and returns how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		sess.RLock()
		expired := sess.LastAccessedAt.Before(cutoff)
		sess.RUnlock()
		if expired {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		m.mu.RLock()
		_, exists := m.sessions[strings.ToLower(id)]
		m.mu.RUnlock()
		if exists {
			continue
		}

		sess, err := m.persistence.Load(id)
		if err != nil {
			log.Warn().Err(err).Str("session", id).Msg("failed to load persisted session")
			continue
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = sess
		m.mu.Unlock()
		loaded++
	}

	if loaded > 0 {
		log.Info().Int("count", loaded).Msg("loaded persisted sessions")
	}
	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessions := m.List()
	failed := 0
	for _, sess := range sessions {
		if err := m.persistence.Save(sess); err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("failed to save session")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}

// generateSessionID derives a short, URL-friendly session ID from a uuid.
func generateSessionID() string {
	return uuid.NewString()[:8]
}
