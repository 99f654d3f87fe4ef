package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config display name, used
// for consistent API responses.
func (s *gameServiceImpl) getConfigID(configName string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range available {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// snapshot builds a render-ready copy of a session's game.
func snapshot(sess *Session) *GameSnapshot {
	coord := sess.Coordinator
	return &GameSnapshot{
		BoardSize:        sess.Config.BoardSize,
		Board:            coord.BoardSnapshot(),
		CurrentPlayer:    coord.CurrentPlayer(),
		MoveNumber:       coord.MoveNumber(),
		Outcome:          coord.Outcome(),
		Phase:            coord.Phase(),
		MoveCount:        len(coord.History()),
		HistoryTruncated: coord.HistoryTruncated(),
		EvictedMoves:     coord.EvictedMoves(),
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := s.getConfigID(sess.Config.Name)

	sess.RLock()
	defer sess.RUnlock()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       snapshot(sess),
	}
}

// CreateSession creates a new game session and starts its first game.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	var config *engine.Config
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, cfg := range available {
					ids = append(ids, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config %q not found. Available configs: %v", configName, ids)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate the ID.
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Place executes a placement for a session.
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, row, col int) (*PlaceResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	res, err := sess.Coordinator.PlaceAt(row, col)
	if err != nil {
		sess.Unlock()
		return nil, err
	}
	response := &PlaceResponse{
		Move:     res.Move,
		Outcome:  res.Outcome,
		Snapshot: snapshot(sess),
		Events:   placeEvents(res),
	}
	sess.Unlock()

	s.autosave(sessionID)
	return response, nil
}

// Undo reverts the most recent move of a session.
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*UndoResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	wasFinished := sess.Coordinator.Phase() == coordinator.PhaseFinished
	undone, err := sess.Coordinator.Undo()
	if err != nil {
		sess.Unlock()
		return nil, err
	}

	events := []GameEvent{{
		Type:      coordinator.EventUndoApplied.String(),
		Message:   fmt.Sprintf("Undid %s move #%d at (%d,%d)", undone.Player, undone.Number, undone.Row, undone.Col),
		Timestamp: time.Now(),
		Move:      &undone,
	}}
	if wasFinished {
		events = append(events, GameEvent{
			Type:      coordinator.EventPhaseChanged.String(),
			Message:   "Game resumed after undoing the final move",
			Timestamp: time.Now(),
			Phase:     coordinator.PhasePlaying,
		})
	}

	response := &UndoResponse{
		Undone:   undone,
		Snapshot: snapshot(sess),
		Events:   events,
	}
	sess.Unlock()

	s.autosave(sessionID)
	return response, nil
}

// Pause gates a session's game.
func (s *gameServiceImpl) Pause(ctx context.Context, sessionID string) (*GameSnapshot, error) {
	return s.phaseOp(sessionID, func(c *coordinator.Coordinator) error { return c.Pause() })
}

// Resume reopens a paused game.
func (s *gameServiceImpl) Resume(ctx context.Context, sessionID string) (*GameSnapshot, error) {
	return s.phaseOp(sessionID, func(c *coordinator.Coordinator) error { return c.Resume() })
}

// Reset discards a session's game and starts a fresh one.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameSnapshot, error) {
	return s.phaseOp(sessionID, func(c *coordinator.Coordinator) error { return c.StartNewGame() })
}

func (s *gameServiceImpl) phaseOp(sessionID string, op func(*coordinator.Coordinator) error) (*GameSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	if err := op(sess.Coordinator); err != nil {
		sess.Unlock()
		return nil, err
	}
	snap := snapshot(sess)
	sess.Unlock()

	s.autosave(sessionID)
	return snap, nil
}

// GetGameState retrieves the current game snapshot.
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.RLock()
	defer sess.RUnlock()
	return snapshot(sess), nil
}

// GetMoveHistory returns paginated move history.
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.RLock()
	defer sess.RUnlock()

	var moves []engine.Move
	if opts.Player != engine.Empty {
		moves = sess.Coordinator.HistoryByPlayer(opts.Player)
	} else {
		moves = sess.Coordinator.History()
	}
	total := len(moves)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var page []engine.Move
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			page = append(page, moves[i])
		}
	} else if start < total {
		page = moves[start:end]
	}
	if page == nil {
		page = []engine.Move{}
	}

	return &HistoryResponse{
		Moves:       page,
		TotalMoves:  total,
		Truncated:   sess.Coordinator.HistoryTruncated(),
		Evicted:     sess.Coordinator.EvictedMoves(),
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ExportSession serializes a session's game to the transfer format.
func (s *gameServiceImpl) ExportSession(ctx context.Context, sessionID string) (*coordinator.SavedGame, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	sess.RLock()
	defer sess.RUnlock()
	return sess.Coordinator.Export(), nil
}

// ImportSession creates a new session from a saved game. The save is
// validated by replaying it; a corrupt save creates nothing.
func (s *gameServiceImpl) ImportSession(ctx context.Context, save *coordinator.SavedGame) (*SessionInfo, error) {
	if save == nil {
		return nil, coordinator.ErrCorruptSave
	}

	config := &engine.Config{
		Name:         s.configs.GetDefault().Name,
		Description:  "Imported game",
		BoardSize:    save.BoardSize,
		WinLength:    save.WinLength,
		HistoryLimit: save.HistoryLimit,
	}
	if err := engine.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", coordinator.ErrCorruptSave, err)
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.Lock()
	err = sess.Coordinator.Import(save)
	sess.Unlock()
	if err != nil {
		// The fresh session never held a valid game; drop it.
		if delErr := s.sessions.Delete(sess.ID); delErr != nil {
			log.Warn().Err(delErr).Str("session", sess.ID).Msg("failed to delete session after rejected import")
		}
		return nil, err
	}

	s.autosave(sess.ID)
	return s.sessionInfo(sess), nil
}

// ListConfigs returns available game configurations.
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration.
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk.
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.Config) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) autosave(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session")
	}
}

// placeEvents projects a placement result into response events, mirroring
// the coordinator's notification order.
func placeEvents(res *coordinator.PlaceResult) []GameEvent {
	now := time.Now()
	move := res.Move
	events := []GameEvent{{
		Type:      coordinator.EventMoveApplied.String(),
		Message:   fmt.Sprintf("%s placed move #%d at (%d,%d)", move.Player, move.Number, move.Row, move.Col),
		Timestamp: now,
		Move:      &move,
	}}

	switch res.Outcome.Status {
	case engine.StatusWon:
		events = append(events, GameEvent{
			Type:      coordinator.EventGameWon.String(),
			Message:   fmt.Sprintf("%s wins with five in a row", res.Outcome.Winner),
			Timestamp: now,
			Winner:    res.Outcome.Winner,
			Line:      res.Outcome.Line,
		})
	case engine.StatusDrawn:
		events = append(events, GameEvent{
			Type:      coordinator.EventGameDrawn.String(),
			Message:   "Board is full, game drawn",
			Timestamp: now,
		})
	}
	return events
}
