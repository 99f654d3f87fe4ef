// Command analyze prints quick, human-readable statistics about persisted
// session files in the project's sessions directory. It summarizes board
// dimensions, phases, recorded history, and aggregates outcomes across all
// saved games.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionFile is a light struct for reading persisted session files used by
// analysis. It tolerates unknown fields so the tool keeps working as the
// persistence format grows.
type SessionFile struct {
	ID             string    `json:"id"`
	ConfigName     string    `json:"config_name"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Game           *struct {
		BoardSize    int    `json:"board_size"`
		WinLength    int    `json:"win_length"`
		HistoryLimit int    `json:"history_limit"`
		Phase        string `json:"phase"`
		Truncated    bool   `json:"truncated"`
		Session      struct {
			CurrentPlayer string `json:"current_player"`
			MoveNumber    int    `json:"move_number"`
			Outcome       struct {
				Status string `json:"status"`
				Winner string `json:"winner"`
			} `json:"outcome"`
		} `json:"session"`
		History []struct {
			Row    int    `json:"row"`
			Col    int    `json:"col"`
			Player string `json:"player"`
			Number int    `json:"number"`
		} `json:"history"`
	} `json:"game"`
}

// Totals aggregates outcome statistics across all analyzed sessions.
type Totals struct {
	Games      int
	InProgress int
	Paused     int
	BlackWins  int
	WhiteWins  int
	Draws      int
	Truncated  int
	TotalMoves int
}

func main() {
	sessionsDir := "sessions"
	if len(os.Args) > 1 {
		sessionsDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(sessionsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding session files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No session files found in %s\n", sessionsDir)
		return
	}

	var totals Totals
	for _, file := range files {
		fmt.Printf("\n=== %s ===\n", filepath.Base(file))
		analyzeSession(file, &totals)
	}

	fmt.Printf("\n=== Totals across %d games ===\n", totals.Games)
	fmt.Printf("Black wins:  %d\n", totals.BlackWins)
	fmt.Printf("White wins:  %d\n", totals.WhiteWins)
	fmt.Printf("Draws:       %d\n", totals.Draws)
	fmt.Printf("In progress: %d\n", totals.InProgress)
	fmt.Printf("Paused:      %d\n", totals.Paused)
	if totals.Truncated > 0 {
		fmt.Printf("Games with evicted history: %d\n", totals.Truncated)
	}
	if totals.Games > 0 {
		fmt.Printf("Average recorded moves per game: %.1f\n",
			float64(totals.TotalMoves)/float64(totals.Games))
	}
}

func analyzeSession(path string, totals *Totals) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var sf SessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}
	if sf.Game == nil {
		fmt.Println("No game data")
		return
	}

	game := sf.Game
	totals.Games++
	totals.TotalMoves += len(game.History)

	fmt.Printf("Session: %s (config: %s)\n", sf.ID, sf.ConfigName)
	fmt.Printf("Board: %dx%d, win length %d\n", game.BoardSize, game.BoardSize, game.WinLength)
	fmt.Printf("Phase: %s\n", game.Phase)
	fmt.Printf("Recorded moves: %d (next move #%d)\n", len(game.History), game.Session.MoveNumber)

	if game.Truncated {
		totals.Truncated++
		evicted := game.Session.MoveNumber - 1 - len(game.History)
		fmt.Printf("History truncated: %d oldest moves evicted (cap %d)\n", evicted, game.HistoryLimit)
	}

	switch game.Session.Outcome.Status {
	case "won":
		switch game.Session.Outcome.Winner {
		case "black":
			totals.BlackWins++
		case "white":
			totals.WhiteWins++
		}
		fmt.Printf("Result: %s wins\n", game.Session.Outcome.Winner)
	case "drawn":
		totals.Draws++
		fmt.Println("Result: draw")
	default:
		if game.Phase == "paused" {
			totals.Paused++
		} else {
			totals.InProgress++
		}
		fmt.Printf("Result: undecided, %s to move\n", game.Session.CurrentPlayer)
	}

	if density := boardDensity(game.Session.MoveNumber-1, game.BoardSize); density != "" {
		fmt.Printf("Board fill: %s\n", density)
	}
}

// boardDensity classifies how full the board is from the number of placed
// stones. Undone moves never lower MoveNumber below the stone count, so
// this is an upper bound, which is fine for a heuristic report.
func boardDensity(stones, boardSize int) string {
	if boardSize <= 0 || stones < 0 {
		return ""
	}
	cells := boardSize * boardSize
	pct := stones * 100 / cells
	switch {
	case pct >= 75:
		return fmt.Sprintf("%d%% (endgame)", pct)
	case pct >= 40:
		return fmt.Sprintf("%d%% (midgame)", pct)
	case pct > 0:
		return fmt.Sprintf("%d%% (opening)", pct)
	}
	return "empty"
}
