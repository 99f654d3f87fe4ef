package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// Player identifies the occupant of a cell.
type Player uint8

const (
	Empty Player = iota
	Black
	White
)

// Validation constants
const (
	MinBoardSize     = 5
	MaxBoardSize     = 25
	DefaultBoardSize = 15
	DefaultWinLength = 5
	MinWinLength     = 3
)

// Other returns the opposing player. Empty has no opponent and maps to itself.
func (p Player) Other() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// MarshalJSON encodes players as their string names so saved games and API
// payloads stay readable.
func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "black":
		*p = Black
	case "white":
		*p = White
	case "empty", "":
		*p = Empty
	default:
		return fmt.Errorf("unknown player %q", s)
	}
	return nil
}

// Coord is a 0-indexed board position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move records one successful placement. Moves are immutable once produced;
// Number is monotonic and starts at 1.
type Move struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Player    Player    `json:"player"`
	Number    int       `json:"number"`
	Timestamp time.Time `json:"timestamp"`
}

// Coord returns the move's board position.
func (m Move) Coord() Coord {
	return Coord{Row: m.Row, Col: m.Col}
}

// Status is the terminal classification of a game.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDrawn
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	}
	return "in_progress"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "in_progress", "":
		*s = StatusInProgress
	case "won":
		*s = StatusWon
	case "drawn":
		*s = StatusDrawn
	default:
		return fmt.Errorf("unknown status %q", v)
	}
	return nil
}

// Outcome describes how a game stands. Winner and Line are only set when
// Status is StatusWon; Line holds the credited winning cells ordered from
// one end of the run to the other.
type Outcome struct {
	Status Status  `json:"status"`
	Winner Player  `json:"winner,omitempty"`
	Line   []Coord `json:"line,omitempty"`
}

// Terminal reports whether the game has ended.
func (o Outcome) Terminal() bool {
	return o.Status != StatusInProgress
}

// Equal compares two outcomes including the winning line.
func (o Outcome) Equal(other Outcome) bool {
	if o.Status != other.Status || o.Winner != other.Winner {
		return false
	}
	if len(o.Line) != len(other.Line) {
		return false
	}
	for i := range o.Line {
		if o.Line[i] != other.Line[i] {
			return false
		}
	}
	return true
}

// Board is an N×N grid of cells. It is owned by an Engine; external callers
// only read it.
type Board struct {
	size  int
	cells []Player
}

// NewBoard creates an empty board. The size is assumed validated by Config.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Player, size*size),
	}
}

// Size returns the board dimension N.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the occupant of (row, col). Out-of-bounds reads return Empty.
func (b *Board) At(row, col int) Player {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

// Rows returns a copy of the board as row-major player slices.
func (b *Board) Rows() [][]Player {
	rows := make([][]Player, b.size)
	for r := 0; r < b.size; r++ {
		row := make([]Player, b.size)
		copy(row, b.cells[r*b.size:(r+1)*b.size])
		rows[r] = row
	}
	return rows
}

func (b *Board) set(row, col int, p Player) {
	b.cells[row*b.size+col] = p
}

func (b *Board) clear(row, col int) {
	b.cells[row*b.size+col] = Empty
}
