package session

import (
	"time"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/service"
)

// Persistence defines the interface for persisting sessions.
type Persistence interface {
	// Save persists a session to storage.
	Save(sess *service.Session) error

	// Load retrieves a session from storage by ID.
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage.
	Delete(id string) error

	// ListAll returns all persisted session IDs.
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage.
	Exists(id string) bool
}

// PersistedSessionData is the JSON structure for persisted sessions. The
// game itself is stored in the coordinator's transfer form and restored by
// replaying it.
type PersistedSessionData struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	Game           *coordinator.SavedGame `json:"game"`
}
