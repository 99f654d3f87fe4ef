package coordinator

import (
	"encoding/json"
	"fmt"

	"github.com/omok-games/fiverow/game/engine"
)

// Phase is the top-level session state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	}
	return "idle"
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase converts a phase name back to its value.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "idle", "":
		return PhaseIdle, nil
	case "playing":
		return PhasePlaying, nil
	case "paused":
		return PhasePaused, nil
	case "finished":
		return PhaseFinished, nil
	}
	return PhaseIdle, fmt.Errorf("unknown phase %q", s)
}

// EventType discriminates the closed set of coordinator notifications.
type EventType uint8

const (
	EventMoveApplied EventType = iota
	EventUndoApplied
	EventGameWon
	EventGameDrawn
	EventGameReset
	EventPhaseChanged
	EventHistoryEvicted
)

func (t EventType) String() string {
	switch t {
	case EventMoveApplied:
		return "move_applied"
	case EventUndoApplied:
		return "undo_applied"
	case EventGameWon:
		return "game_won"
	case EventGameDrawn:
		return "game_drawn"
	case EventGameReset:
		return "game_reset"
	case EventPhaseChanged:
		return "phase_changed"
	case EventHistoryEvicted:
		return "history_evicted"
	}
	return "unknown"
}

// Event is the tagged union delivered to subscribers. Which fields are set
// depends on Type:
//
//	MoveApplied, UndoApplied: Move
//	HistoryEvicted:           Move (the evicted, no-longer-undoable move)
//	GameWon:                  Winner, Line
//	PhaseChanged:             Phase
//	GameDrawn, GameReset:     no payload
type Event struct {
	Type   EventType
	Move   *engine.Move
	Winner engine.Player
	Line   []engine.Coord
	Phase  Phase
}

// Subscriber receives coordinator events. Callbacks run synchronously on
// the calling goroutine and must not invoke the coordinator's mutating
// operations.
type Subscriber func(Event)
