package service

import (
	"time"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
)

// SessionInfo provides information about a game session.
type SessionInfo struct {
	ID             string        `json:"id"`
	ConfigName     string        `json:"config_name"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	Snapshot       *GameSnapshot `json:"snapshot"`
}

// GameSnapshot is the render-ready view of a game handed to the
// presentation layers. It is a copy; mutating it never touches live state.
type GameSnapshot struct {
	BoardSize        int               `json:"board_size"`
	Board            [][]engine.Player `json:"board"`
	CurrentPlayer    engine.Player     `json:"current_player"`
	MoveNumber       int               `json:"move_number"`
	Outcome          engine.Outcome    `json:"outcome"`
	Phase            coordinator.Phase `json:"phase"`
	MoveCount        int               `json:"move_count"`
	HistoryTruncated bool              `json:"history_truncated,omitempty"`
	EvictedMoves     int               `json:"evicted_moves,omitempty"`
}

// GameEvent is the JSON-friendly projection of a coordinator notification,
// attached to operation responses for clients that do not hold a WebSocket.
type GameEvent struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Move      *engine.Move      `json:"move,omitempty"`
	Winner    engine.Player     `json:"winner,omitempty"`
	Line      []engine.Coord    `json:"line,omitempty"`
	Phase     coordinator.Phase `json:"phase,omitempty"`
}

// PlaceResponse contains the result of a placement.
type PlaceResponse struct {
	Move     engine.Move    `json:"move"`
	Outcome  engine.Outcome `json:"outcome"`
	Snapshot *GameSnapshot  `json:"snapshot"`
	Events   []GameEvent    `json:"events"`
}

// UndoResponse contains the result of an undo.
type UndoResponse struct {
	Undone   engine.Move   `json:"undone"`
	Snapshot *GameSnapshot `json:"snapshot"`
	Events   []GameEvent   `json:"events"`
}

// HistoryOptions configures move history retrieval.
type HistoryOptions struct {
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
	Order  string        `json:"order"` // "asc" or "desc"
	Player engine.Player `json:"player,omitempty"`
}

// HistoryResponse contains paginated move history.
type HistoryResponse struct {
	Moves       []engine.Move `json:"moves"`
	TotalMoves  int           `json:"total_moves"`
	Truncated   bool          `json:"truncated"`
	Evicted     int           `json:"evicted"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration.
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	BoardSize    int    `json:"board_size"`
	WinLength    int    `json:"win_length"`
	HistoryLimit int    `json:"history_limit"`
}
