package coordinator

import (
	"errors"

	"github.com/omok-games/fiverow/game/engine"
	"github.com/omok-games/fiverow/game/history"
)

// Errors returned by coordinator operations. All are recoverable
// rejections; the caller decides how to surface them.
var (
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrUndoBeyondHistory = errors.New("undo not possible: move evicted from history")
	ErrGameNotActive     = errors.New("game not active")
	ErrCorruptSave       = errors.New("corrupt save")
	ErrReentrantCall     = errors.New("re-entrant call during notification")
)

// Coordinator owns a single game's engine, history log, and phase.
type Coordinator struct {
	cfg   *engine.Config
	eng   *engine.Engine
	log   *history.Log
	phase Phase
	subs  []Subscriber

	// notifying guards against subscriber callbacks re-entering mutating
	// operations while a notification is being delivered.
	notifying bool
}

// PlaceResult reports a successful placement: the recorded move and the
// outcome after it.
type PlaceResult struct {
	Move    engine.Move
	Outcome engine.Outcome
}

// New creates a coordinator in the Idle phase. StartNewGame transitions it
// to Playing.
func New(cfg *engine.Config) (*Coordinator, error) {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Coordinator{
		cfg:   cfg,
		eng:   eng,
		log:   history.NewLog(cfg.HistoryLimit),
		phase: PhaseIdle,
	}, nil
}

// Subscribe registers a notification callback. Subscribers cannot be
// removed; they live as long as the coordinator.
func (c *Coordinator) Subscribe(fn Subscriber) {
	c.subs = append(c.subs, fn)
}

// Config returns the configuration this game runs under.
func (c *Coordinator) Config() *engine.Config {
	return c.cfg
}

// Phase returns the current session phase.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// Outcome returns the current game outcome.
func (c *Coordinator) Outcome() engine.Outcome {
	return c.eng.Outcome()
}

// CurrentPlayer returns the player to move.
func (c *Coordinator) CurrentPlayer() engine.Player {
	return c.eng.CurrentPlayer()
}

// MoveNumber returns the number the next move will receive. It always
// equals the count of applied moves plus one.
func (c *Coordinator) MoveNumber() int {
	return c.eng.MoveNumber()
}

// BoardSnapshot returns a copy of the board as row-major player slices.
// Observers render from notifications and snapshots, never from live
// engine internals.
func (c *Coordinator) BoardSnapshot() [][]engine.Player {
	return c.eng.Board().Rows()
}

// History returns a copy of the retained move log in order.
func (c *Coordinator) History() []engine.Move {
	return c.log.Snapshot()
}

// HistoryByPlayer returns the retained moves made by one player.
func (c *Coordinator) HistoryByPlayer(p engine.Player) []engine.Move {
	return c.log.ByPlayer(p)
}

// HistoryTruncated reports whether moves have been evicted from the log.
func (c *Coordinator) HistoryTruncated() bool {
	return c.log.Truncated()
}

// EvictedMoves returns the number of moves lost to eviction.
func (c *Coordinator) EvictedMoves() int {
	return c.log.EvictedCount()
}

// CanPlace reports whether a placement at (row, col) would currently be
// accepted: phase is Playing and the engine accepts the cell.
func (c *Coordinator) CanPlace(row, col int) bool {
	return c.phase == PhasePlaying && c.eng.CanPlace(row, col)
}

// StartNewGame discards the current board, session, and history and starts
// a fresh game in the Playing phase.
func (c *Coordinator) StartNewGame() error {
	if c.notifying {
		return ErrReentrantCall
	}
	eng, err := engine.NewEngine(c.cfg)
	if err != nil {
		return err
	}
	c.eng = eng
	c.log = history.NewLog(c.cfg.HistoryLimit)
	prev := c.phase
	c.phase = PhasePlaying

	c.emit(Event{Type: EventGameReset})
	if prev != PhasePlaying {
		c.emit(Event{Type: EventPhaseChanged, Phase: PhasePlaying})
	}
	return nil
}

// PlaceAt places the current player's stone at (row, col). Valid only while
// Playing. On success the move is appended to history and observers are
// notified; a win or draw transitions the session to Finished.
func (c *Coordinator) PlaceAt(row, col int) (*PlaceResult, error) {
	if c.notifying {
		return nil, ErrReentrantCall
	}
	switch c.phase {
	case PhasePlaying:
	case PhaseFinished:
		return nil, engine.ErrGameOver
	default:
		return nil, ErrGameNotActive
	}

	move, outcome, err := c.eng.Place(row, col)
	if err != nil {
		return nil, err
	}
	evicted, wasEvicted := c.log.Append(move)

	if outcome.Terminal() {
		c.phase = PhaseFinished
	}

	c.emit(Event{Type: EventMoveApplied, Move: &move})
	if wasEvicted {
		ev := evicted
		c.emit(Event{Type: EventHistoryEvicted, Move: &ev})
	}
	switch outcome.Status {
	case engine.StatusWon:
		c.emit(Event{Type: EventGameWon, Winner: outcome.Winner, Line: outcome.Line})
		c.emit(Event{Type: EventPhaseChanged, Phase: PhaseFinished})
	case engine.StatusDrawn:
		c.emit(Event{Type: EventGameDrawn})
		c.emit(Event{Type: EventPhaseChanged, Phase: PhaseFinished})
	}

	return &PlaceResult{Move: move, Outcome: outcome}, nil
}

// Undo reverts the most recent move. It fails with ErrNothingToUndo when
// the history is empty, or ErrUndoBeyondHistory when the remaining moves
// were evicted. Undoing the terminal move returns a Finished game to
// Playing; undo is single-step only, there is no redo.
func (c *Coordinator) Undo() (engine.Move, error) {
	if c.notifying {
		return engine.Move{}, ErrReentrantCall
	}
	switch c.phase {
	case PhasePlaying, PhaseFinished:
	case PhasePaused:
		return engine.Move{}, ErrGameNotActive
	default:
		return engine.Move{}, ErrNothingToUndo
	}

	move, ok := c.log.PopLast()
	if !ok {
		if c.log.Truncated() {
			return engine.Move{}, ErrUndoBeyondHistory
		}
		return engine.Move{}, ErrNothingToUndo
	}

	// The popped move is by construction the most recently applied one,
	// which is the precondition UndoLast relies on.
	c.eng.UndoLast(move)
	wasFinished := c.phase == PhaseFinished
	if wasFinished {
		c.phase = PhasePlaying
	}

	c.emit(Event{Type: EventUndoApplied, Move: &move})
	if wasFinished {
		c.emit(Event{Type: EventPhaseChanged, Phase: PhasePlaying})
	}
	return move, nil
}

// Pause gates the game: placement and undo are rejected until Resume.
// Pausing is only meaningful while Playing; pausing a Finished game is
// rejected.
func (c *Coordinator) Pause() error {
	if c.notifying {
		return ErrReentrantCall
	}
	if c.phase != PhasePlaying {
		return ErrGameNotActive
	}
	c.phase = PhasePaused
	c.emit(Event{Type: EventPhaseChanged, Phase: PhasePaused})
	return nil
}

// Resume returns a Paused game to Playing.
func (c *Coordinator) Resume() error {
	if c.notifying {
		return ErrReentrantCall
	}
	if c.phase != PhasePaused {
		return ErrGameNotActive
	}
	c.phase = PhasePlaying
	c.emit(Event{Type: EventPhaseChanged, Phase: PhasePlaying})
	return nil
}

// emit notifies subscribers. The guard is cleared on the way out even if
// a subscriber panics, so the coordinator stays usable afterwards.
func (c *Coordinator) emit(ev Event) {
	c.notifying = true
	defer func() { c.notifying = false }()
	for _, fn := range c.subs {
		fn(ev)
	}
}
