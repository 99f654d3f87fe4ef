package coordinator

import (
	"fmt"

	"github.com/omok-games/fiverow/game/engine"
	"github.com/omok-games/fiverow/game/history"
)

// SavedSession is the session slice of a saved game.
type SavedSession struct {
	CurrentPlayer engine.Player  `json:"current_player"`
	MoveNumber    int            `json:"move_number"`
	Outcome       engine.Outcome `json:"outcome"`
}

// SavedGame is the transfer form for export and import. Truncated saves
// (history eviction occurred) carry only the retained tail of the game and
// cannot be imported, since import reconstructs state by replaying every
// move from the beginning.
type SavedGame struct {
	BoardSize    int           `json:"board_size"`
	WinLength    int           `json:"win_length"`
	HistoryLimit int           `json:"history_limit"`
	Phase        Phase         `json:"phase"`
	Truncated    bool          `json:"truncated,omitempty"`
	Session      SavedSession  `json:"session"`
	History      []engine.Move `json:"history"`
}

// Export serializes the current game. The storage medium is the caller's
// concern; the coordinator only defines the transfer format.
func (c *Coordinator) Export() *SavedGame {
	winLength := c.cfg.WinLength
	if winLength == 0 {
		winLength = engine.DefaultWinLength
	}
	return &SavedGame{
		BoardSize:    c.cfg.BoardSize,
		WinLength:    winLength,
		HistoryLimit: c.cfg.HistoryLimit,
		Phase:        c.phase,
		Truncated:    c.log.Truncated(),
		Session: SavedSession{
			CurrentPlayer: c.eng.CurrentPlayer(),
			MoveNumber:    c.eng.MoveNumber(),
			Outcome:       c.eng.Outcome(),
		},
		History: c.log.Snapshot(),
	}
}

// Import reconstructs the coordinator's state from a saved game by
// replaying every recorded move through a fresh engine. Each replayed move
// must be accepted and must reproduce the recorded player and number, and
// the final state must match the embedded session exactly; otherwise the
// import fails with ErrCorruptSave and the coordinator keeps its pre-import
// state untouched. The replay happens entirely on the side, so the import
// is all-or-nothing by construction.
func (c *Coordinator) Import(save *SavedGame) error {
	if c.notifying {
		return ErrReentrantCall
	}
	if save == nil {
		return fmt.Errorf("%w: no data", ErrCorruptSave)
	}
	if save.Truncated {
		return fmt.Errorf("%w: history truncated by eviction, cannot replay", ErrCorruptSave)
	}

	cfg := &engine.Config{
		Name:         c.cfg.Name,
		Description:  c.cfg.Description,
		BoardSize:    save.BoardSize,
		WinLength:    save.WinLength,
		HistoryLimit: save.HistoryLimit,
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	log := history.NewLog(save.HistoryLimit)
	for i, recorded := range save.History {
		replayed, _, err := eng.Place(recorded.Row, recorded.Col)
		if err != nil {
			return fmt.Errorf("%w: move %d rejected: %v", ErrCorruptSave, i+1, err)
		}
		if replayed.Player != recorded.Player || replayed.Number != recorded.Number {
			return fmt.Errorf("%w: move %d does not match recorded player/number", ErrCorruptSave, i+1)
		}
		// Keep the recorded move, not the replayed one, so original
		// timestamps survive the round trip.
		if _, evicted := log.Append(recorded); evicted {
			return fmt.Errorf("%w: history exceeds its own limit", ErrCorruptSave)
		}
	}

	if eng.CurrentPlayer() != save.Session.CurrentPlayer {
		return fmt.Errorf("%w: replay produced current player %v, save says %v", ErrCorruptSave, eng.CurrentPlayer(), save.Session.CurrentPlayer)
	}
	if eng.MoveNumber() != save.Session.MoveNumber {
		return fmt.Errorf("%w: replay produced move number %d, save says %d", ErrCorruptSave, eng.MoveNumber(), save.Session.MoveNumber)
	}
	if !eng.Outcome().Equal(save.Session.Outcome) {
		return fmt.Errorf("%w: replay outcome does not match saved outcome", ErrCorruptSave)
	}
	if err := validatePhase(save.Phase, eng.Outcome(), len(save.History)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	c.cfg = cfg
	c.eng = eng
	c.log = log
	prev := c.phase
	c.phase = save.Phase

	c.emit(Event{Type: EventGameReset})
	if prev != save.Phase {
		c.emit(Event{Type: EventPhaseChanged, Phase: save.Phase})
	}
	return nil
}

// validatePhase checks that a saved phase is consistent with the replayed
// outcome and history.
func validatePhase(phase Phase, outcome engine.Outcome, moves int) error {
	switch phase {
	case PhaseFinished:
		if !outcome.Terminal() {
			return fmt.Errorf("phase finished but game is in progress")
		}
	case PhasePlaying, PhasePaused:
		if outcome.Terminal() {
			return fmt.Errorf("phase %v but game already ended", phase)
		}
	case PhaseIdle:
		if moves != 0 {
			return fmt.Errorf("phase idle with %d recorded moves", moves)
		}
	}
	return nil
}
