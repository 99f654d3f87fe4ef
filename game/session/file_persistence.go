package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
	"github.com/omok-games/fiverow/game/service"
)

// FilePersistence implements Persistence using file system storage, one
// JSON file per session.
type FilePersistence struct {
	sessionsDir string
}

// NewFilePersistence creates a new file-based session persistence layer.
func NewFilePersistence(sessionsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{sessionsDir: sessionsDir}, nil
}

// Save persists a session to a JSON file.
func (fp *FilePersistence) Save(sess *service.Session) error {
	if sess == nil {
		return fmt.Errorf("session cannot be nil")
	}

	sess.RLock()
	data := PersistedSessionData{
		ID:             sess.ID,
		ConfigName:     sess.Config.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Game:           sess.Coordinator.Export(),
	}
	sess.RUnlock()

	if data.Game.Truncated {
		log.Warn().Str("session", sess.ID).Int("evicted", data.Game.Session.MoveNumber-1-len(data.Game.History)).
			Msg("saving session with evicted history; the save cannot be restored")
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(sess.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves a session from a JSON file and reconstructs its game by
// replaying the saved history through the coordinator's import path.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.Game == nil {
		return nil, fmt.Errorf("session file %s has no game data", id)
	}

	config := &engine.Config{
		Name:         data.ConfigName,
		BoardSize:    data.Game.BoardSize,
		WinLength:    data.Game.WinLength,
		HistoryLimit: data.Game.HistoryLimit,
	}
	if config.Name == "" {
		config.Name = "Restored"
	}

	coord, err := coordinator.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}
	if err := coord.Import(data.Game); err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Coordinator:    coord,
		Config:         config,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

// Exists checks if a session file exists.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}
