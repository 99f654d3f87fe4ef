package service

import (
	"context"
	"sync"
	"time"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
)

// GameService defines all game-related operations.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Turn operations
	Place(ctx context.Context, sessionID string, row, col int) (*PlaceResponse, error)
	Undo(ctx context.Context, sessionID string) (*UndoResponse, error)
	Pause(ctx context.Context, sessionID string) (*GameSnapshot, error)
	Resume(ctx context.Context, sessionID string) (*GameSnapshot, error)
	Reset(ctx context.Context, sessionID string) (*GameSnapshot, error)

	// Game state
	GetGameState(ctx context.Context, sessionID string) (*GameSnapshot, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Transfer
	ExportSession(ctx context.Context, sessionID string) (*coordinator.SavedGame, error)
	ImportSession(ctx context.Context, save *coordinator.SavedGame) (*SessionInfo, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Config, error)
	SaveConfig(ctx context.Context, configName string, config *engine.Config) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id string, config *engine.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading.
type ConfigManager interface {
	LoadConfig(name string) (*engine.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Config
	SaveConfig(name string, config *engine.Config) error
}

// Session represents an active game session.
type Session struct {
	ID             string
	Coordinator    *coordinator.Coordinator
	Config         *engine.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// mu serializes turn operations on this game; readers take the read
	// side. The coordinator itself is single-threaded by contract.
	mu sync.RWMutex
}

// Lock takes the session's turn-operation lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's turn-operation lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// RLock takes the session lock for reading.
func (s *Session) RLock() { s.mu.RLock() }

// RUnlock releases the session's read lock.
func (s *Session) RUnlock() { s.mu.RUnlock() }
