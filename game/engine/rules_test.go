package engine

import (
	"testing"
	"time"
)

func testConfig(size int) *Config {
	return &Config{
		Name:        "Rules Test Config",
		Description: "Configuration for rules tests",
		BoardSize:   size,
		WinLength:   5,
	}
}

func newTestEngine(t *testing.T, size int) *Engine {
	t.Helper()
	eng, err := NewEngine(testConfig(size))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

// mustPlace places a stone and fails the test on rejection.
func mustPlace(t *testing.T, e *Engine, row, col int) (Move, Outcome) {
	t.Helper()
	move, outcome, err := e.Place(row, col)
	if err != nil {
		t.Fatalf("Place(%d,%d) failed: %v", row, col, err)
	}
	return move, outcome
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t, 15)

	if eng.CurrentPlayer() != Black {
		t.Errorf("Expected Black to move first, got %v", eng.CurrentPlayer())
	}
	if eng.MoveNumber() != 1 {
		t.Errorf("Expected first move number 1, got %d", eng.MoveNumber())
	}
	if eng.Outcome().Terminal() {
		t.Error("Expected new game to be in progress")
	}
	if eng.StoneCount() != 0 {
		t.Errorf("Expected empty board, got %d stones", eng.StoneCount())
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
	}{
		{"nil", nil},
		{"missing name", &Config{BoardSize: 15}},
		{"board too small", &Config{Name: "x", BoardSize: 4}},
		{"board too large", &Config{Name: "x", BoardSize: 26}},
		{"win length too small", &Config{Name: "x", BoardSize: 15, WinLength: 2}},
		{"win length exceeds board", &Config{Name: "x", BoardSize: 9, WinLength: 10}},
		{"negative history limit", &Config{Name: "x", BoardSize: 15, HistoryLimit: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEngine(tc.cfg); err == nil {
				t.Error("Expected error for invalid config")
			}
		})
	}
}

func TestPlace_AlternatesTurnsAndNumbersMoves(t *testing.T) {
	eng := newTestEngine(t, 15)

	m1, _ := mustPlace(t, eng, 7, 7)
	if m1.Player != Black || m1.Number != 1 {
		t.Errorf("Expected black move #1, got %v #%d", m1.Player, m1.Number)
	}
	if eng.CurrentPlayer() != White {
		t.Errorf("Expected turn to flip to white, got %v", eng.CurrentPlayer())
	}

	m2, _ := mustPlace(t, eng, 8, 8)
	if m2.Player != White || m2.Number != 2 {
		t.Errorf("Expected white move #2, got %v #%d", m2.Player, m2.Number)
	}
	if eng.MoveNumber() != 3 {
		t.Errorf("Expected next move number 3, got %d", eng.MoveNumber())
	}
}

func TestPlace_Rejections(t *testing.T) {
	eng := newTestEngine(t, 15)
	mustPlace(t, eng, 7, 7)

	beforeTurn := eng.CurrentPlayer()
	beforeNumber := eng.MoveNumber()

	if _, _, err := eng.Place(7, 7); err != ErrOccupied {
		t.Errorf("Expected ErrOccupied, got %v", err)
	}
	if _, _, err := eng.Place(-1, 0); err != ErrOutOfBounds {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if _, _, err := eng.Place(15, 3); err != ErrOutOfBounds {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}

	// Rejections must not advance the session.
	if eng.CurrentPlayer() != beforeTurn {
		t.Error("Rejected placement flipped the turn")
	}
	if eng.MoveNumber() != beforeNumber {
		t.Error("Rejected placement advanced the move number")
	}
}

func TestPlace_HorizontalWin(t *testing.T) {
	eng := newTestEngine(t, 5)

	// Black builds the top row, white fills the second row.
	mustPlace(t, eng, 0, 0)
	mustPlace(t, eng, 1, 0)
	mustPlace(t, eng, 0, 1)
	mustPlace(t, eng, 1, 1)
	mustPlace(t, eng, 0, 2)
	mustPlace(t, eng, 1, 2)
	mustPlace(t, eng, 0, 3)
	mustPlace(t, eng, 1, 3)

	move, outcome := mustPlace(t, eng, 0, 4)
	if move.Player != Black {
		t.Fatalf("Expected winning move by black, got %v", move.Player)
	}
	if outcome.Status != StatusWon || outcome.Winner != Black {
		t.Fatalf("Expected black win, got %+v", outcome)
	}
	want := []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}
	if len(outcome.Line) != len(want) {
		t.Fatalf("Expected 5-cell line, got %v", outcome.Line)
	}
	for i, c := range want {
		if outcome.Line[i] != c {
			t.Errorf("Line[%d]: expected %v, got %v", i, c, outcome.Line[i])
		}
	}
}

func TestPlace_FourInARowDoesNotWin(t *testing.T) {
	eng := newTestEngine(t, 15)

	for col := 0; col < 4; col++ {
		_, outcome := mustPlace(t, eng, 0, col) // black
		if outcome.Terminal() {
			t.Fatalf("Game ended early at col %d: %+v", col, outcome)
		}
		mustPlace(t, eng, 1, col) // white
	}

	if eng.Outcome().Terminal() {
		t.Errorf("Four in a row must not win: %+v", eng.Outcome())
	}
}

func TestPlace_VerticalAndDiagonalWins(t *testing.T) {
	directions := []struct {
		name   string
		dr, dc int
	}{
		{"vertical", 1, 0},
		{"diagonal down-right", 1, 1},
		{"diagonal down-left", 1, -1},
	}
	for _, d := range directions {
		t.Run(d.name, func(t *testing.T) {
			eng := newTestEngine(t, 15)
			startRow, startCol := 2, 7
			for i := 0; i < 4; i++ {
				mustPlace(t, eng, startRow+i*d.dr, startCol+i*d.dc)
				mustPlace(t, eng, 10, i) // white stones parked on row 10
			}
			_, outcome := mustPlace(t, eng, startRow+4*d.dr, startCol+4*d.dc)
			if outcome.Status != StatusWon || outcome.Winner != Black {
				t.Errorf("Expected black win, got %+v", outcome)
			}
			if len(outcome.Line) != 5 {
				t.Errorf("Expected 5-cell line, got %v", outcome.Line)
			}
		})
	}
}

func TestPlace_OverlineWinsAndCreditsPlacedStone(t *testing.T) {
	eng := newTestEngine(t, 15)

	// Black stones at columns 0,1,2 and 4,5,6; the gap at column 3 is
	// filled last, creating a 7-long run.
	blackCols := []int{0, 1, 2, 4, 5, 6}
	for i, col := range blackCols {
		mustPlace(t, eng, 0, col)
		mustPlace(t, eng, 10, i)
	}

	move, outcome := mustPlace(t, eng, 0, 3)
	if outcome.Status != StatusWon {
		t.Fatalf("Expected overline to win, got %+v", outcome)
	}
	if len(outcome.Line) != 5 {
		t.Fatalf("Expected exactly 5 credited cells, got %v", outcome.Line)
	}
	found := false
	for _, c := range outcome.Line {
		if c.Row == move.Row && c.Col == move.Col {
			found = true
		}
	}
	if !found {
		t.Errorf("Winning line %v does not include the placed cell (%d,%d)", outcome.Line, move.Row, move.Col)
	}
	// Earliest window containing the placed cell: run spans cols 0-6,
	// placed index is 3, so credited cells are cols 0-4.
	if outcome.Line[0] != (Coord{0, 0}) || outcome.Line[4] != (Coord{0, 4}) {
		t.Errorf("Expected credited window cols 0-4, got %v", outcome.Line)
	}
}

func TestPlace_AfterWinRejected(t *testing.T) {
	eng := winBlackOnFirstRow(t)

	if _, _, err := eng.Place(3, 3); err != ErrGameOver {
		t.Errorf("Expected ErrGameOver after win, got %v", err)
	}
	if eng.CanPlace(3, 3) {
		t.Error("CanPlace should be false after the game ends")
	}
}

func TestPlace_Draw(t *testing.T) {
	eng := drawOnFiveByFive(t)
	if eng.Outcome().Status != StatusDrawn {
		t.Fatalf("Expected draw, got %+v", eng.Outcome())
	}
	if eng.StoneCount() != 25 {
		t.Errorf("Expected full board, got %d stones", eng.StoneCount())
	}
}

func TestUndoLast_RestoresPriorState(t *testing.T) {
	eng := newTestEngine(t, 15)
	mustPlace(t, eng, 7, 7)

	beforeTurn := eng.CurrentPlayer()
	beforeNumber := eng.MoveNumber()
	move, _ := mustPlace(t, eng, 8, 8)

	eng.UndoLast(move)

	if eng.Board().At(8, 8) != Empty {
		t.Error("Expected undone cell to be empty")
	}
	if eng.CurrentPlayer() != beforeTurn {
		t.Errorf("Expected turn restored to %v, got %v", beforeTurn, eng.CurrentPlayer())
	}
	if eng.MoveNumber() != beforeNumber {
		t.Errorf("Expected move number restored to %d, got %d", beforeNumber, eng.MoveNumber())
	}
	if eng.StoneCount() != 1 {
		t.Errorf("Expected 1 stone after undo, got %d", eng.StoneCount())
	}
}

func TestUndoLast_ReopensFinishedGame(t *testing.T) {
	eng := newTestEngine(t, 5)
	var winning Move
	moves := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}, {0, 3}, {1, 3}}
	for _, m := range moves {
		mustPlace(t, eng, m[0], m[1])
	}
	winning, outcome := mustPlace(t, eng, 0, 4)
	if outcome.Status != StatusWon {
		t.Fatalf("Setup failed, expected win: %+v", outcome)
	}

	eng.UndoLast(winning)

	if eng.Outcome().Terminal() {
		t.Errorf("Expected outcome reset to in-progress, got %+v", eng.Outcome())
	}
	if eng.CurrentPlayer() != Black {
		t.Errorf("Expected black to move again, got %v", eng.CurrentPlayer())
	}
	if eng.MoveNumber() != winning.Number {
		t.Errorf("Expected move number %d, got %d", winning.Number, eng.MoveNumber())
	}
}

func TestMove_Timestamps(t *testing.T) {
	eng := newTestEngine(t, 15)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	eng.now = func() time.Time { return fixed }

	move, _ := mustPlace(t, eng, 7, 7)
	if !move.Timestamp.Equal(fixed) {
		t.Errorf("Expected timestamp %v, got %v", fixed, move.Timestamp)
	}
}

// winBlackOnFirstRow plays a quick game where black wins on row 0 of a 5x5
// board.
func winBlackOnFirstRow(t *testing.T) *Engine {
	t.Helper()
	eng := newTestEngine(t, 5)
	moves := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}, {0, 3}, {1, 3}, {0, 4}}
	for _, m := range moves {
		mustPlace(t, eng, m[0], m[1])
	}
	if eng.Outcome().Status != StatusWon {
		t.Fatalf("Setup game did not end in a win: %+v", eng.Outcome())
	}
	return eng
}

// drawOnFiveByFive fills a 5x5 board completely without producing a five-run
// for either player. Rows are filled in a 2-2-1 color pattern with a row
// order that breaks every vertical and diagonal line.
func drawOnFiveByFive(t *testing.T) *Engine {
	t.Helper()
	eng := newTestEngine(t, 5)

	// Cell colors per row: B=black, W=white. Verified to contain no
	// 5-in-a-row in any direction.
	pattern := [5]string{
		"BBWWB",
		"WWBBW",
		"BBWWB",
		"WWBBW",
		"WBWBB",
	}

	// Collect cells per color, then interleave placements so the engine's
	// alternating turns reproduce the pattern.
	var blacks, whites [][2]int
	for r, row := range pattern {
		for c, ch := range row {
			if ch == 'B' {
				blacks = append(blacks, [2]int{r, c})
			} else {
				whites = append(whites, [2]int{r, c})
			}
		}
	}
	if len(blacks) != 13 || len(whites) != 12 {
		t.Fatalf("Bad draw pattern: %d black, %d white", len(blacks), len(whites))
	}
	for i := 0; i < 12; i++ {
		mustPlace(t, eng, blacks[i][0], blacks[i][1])
		mustPlace(t, eng, whites[i][0], whites[i][1])
	}
	mustPlace(t, eng, blacks[12][0], blacks[12][1])
	return eng
}
