package engine

import (
	"errors"
	"time"
)

// Errors returned by placement attempts. All are recoverable rejections,
// surfaced to the caller rather than terminating the game.
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrOccupied    = errors.New("cell already occupied")
	ErrGameOver    = errors.New("game already over")
)

// axisDirections are the four line orientations checked for a win:
// horizontal, vertical, and the two diagonals. The opposite direction of
// each is scanned implicitly.
var axisDirections = [4]Coord{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// Engine enforces the game rules. It owns the board and the session values
// derived from it: whose turn it is, the next move number, and the outcome.
// All board mutation goes through Place and UndoLast so the invariants stay
// enforced in one place.
type Engine struct {
	board      *Board
	winLength  int
	current    Player
	moveNumber int
	outcome    Outcome
	placed     int

	// now is swappable in tests to get deterministic timestamps.
	now func() time.Time
}

// NewEngine creates an engine for the provided configuration. Black moves
// first.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	winLength := cfg.WinLength
	if winLength == 0 {
		winLength = DefaultWinLength
	}
	return &Engine{
		board:      NewBoard(cfg.BoardSize),
		winLength:  winLength,
		current:    Black,
		moveNumber: 1,
		now:        time.Now,
	}, nil
}

// Board returns the engine's board for read access.
func (e *Engine) Board() *Board {
	return e.board
}

// CurrentPlayer returns the player whose turn it is.
func (e *Engine) CurrentPlayer() Player {
	return e.current
}

// MoveNumber returns the number the next successful placement will receive.
func (e *Engine) MoveNumber() int {
	return e.moveNumber
}

// Outcome returns the current game outcome.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// StoneCount returns the number of occupied cells.
func (e *Engine) StoneCount() int {
	return e.placed
}

// CanPlace reports whether a stone may be placed at (row, col): the game is
// still in progress, the position is on the board, and the cell is empty.
func (e *Engine) CanPlace(row, col int) bool {
	return !e.outcome.Terminal() && e.board.InBounds(row, col) && e.board.At(row, col) == Empty
}

// Place puts the current player's stone at (row, col). On success it
// records the move, runs win detection from the placed cell, advances the
// move number, and flips the turn unless the game ended. The returned
// outcome reflects the game state after the move.
func (e *Engine) Place(row, col int) (Move, Outcome, error) {
	if e.outcome.Terminal() {
		return Move{}, e.outcome, ErrGameOver
	}
	if !e.board.InBounds(row, col) {
		return Move{}, e.outcome, ErrOutOfBounds
	}
	if e.board.At(row, col) != Empty {
		return Move{}, e.outcome, ErrOccupied
	}

	player := e.current
	e.board.set(row, col, player)
	e.placed++

	move := Move{
		Row:       row,
		Col:       col,
		Player:    player,
		Number:    e.moveNumber,
		Timestamp: e.now(),
	}
	e.moveNumber++

	if line := e.winningLine(row, col, player); line != nil {
		e.outcome = Outcome{Status: StatusWon, Winner: player, Line: line}
	} else if e.placed == e.board.size*e.board.size {
		e.outcome = Outcome{Status: StatusDrawn}
	} else {
		e.current = player.Other()
	}

	return move, e.outcome, nil
}

// UndoLast reverts a placement: the cell becomes empty again, the turn and
// move number return to the undone move's values, and the outcome resets to
// in-progress. The move must be the most recently applied one; callers
// guarantee this by only passing moves popped from the history log.
func (e *Engine) UndoLast(m Move) {
	e.board.clear(m.Row, m.Col)
	e.placed--
	e.current = m.Player
	e.moveNumber = m.Number
	e.outcome = Outcome{}
}

// winningLine returns the credited winning cells if placing player's stone
// at (row, col) completed a run of winLength or more, nil otherwise. The
// scan walks each axis in both directions from the placed cell, so the cost
// is bounded by the run length rather than the board area.
//
// For overlines the run is ordered from its negative-direction end and the
// credited cells are the earliest winLength-sized window of the run that
// contains the just-placed cell.
func (e *Engine) winningLine(row, col int, player Player) []Coord {
	for _, d := range axisDirections {
		// Walk back to the start of the run.
		startRow, startCol := row, col
		for e.board.At(startRow-d.Row, startCol-d.Col) == player {
			startRow -= d.Row
			startCol -= d.Col
		}

		// Collect the full run and note where the placed cell sits.
		var run []Coord
		placedIdx := -1
		r, c := startRow, startCol
		for e.board.InBounds(r, c) && e.board.At(r, c) == player {
			if r == row && c == col {
				placedIdx = len(run)
			}
			run = append(run, Coord{Row: r, Col: c})
			r += d.Row
			c += d.Col
		}

		if len(run) < e.winLength {
			continue
		}
		start := placedIdx - e.winLength + 1
		if start < 0 {
			start = 0
		}
		return run[start : start+e.winLength]
	}
	return nil
}
