// Package engine provides the core rules for the five-in-a-row game.
//
// The engine package implements the game mechanics including:
//   - Board state: an N×N grid of cells owned exclusively by the Engine
//   - Placement validation (bounds, occupancy, terminal state)
//   - Turn alternation and move numbering
//   - Win detection along the four axis directions through the last stone
//   - Draw detection when the board fills without a winning line
//   - Single-step undo that restores the exact prior state
//
// Core Types:
//
// Engine owns the Board and the per-game session values (current player,
// next move number, outcome). Config defines the board dimensions and rule
// parameters loaded from JSON files.
//
// Usage:
//
//	cfg := engine.DefaultConfig()
//	eng, err := engine.NewEngine(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	move, outcome, err := eng.Place(7, 7)
//	if outcome.Status == engine.StatusWon {
//		fmt.Println("winner:", outcome.Winner)
//	}
//
// Game Rules:
//
// Two players alternate placing stones on empty cells. The first player to
// form a contiguous run of at least five same-colored stones horizontally,
// vertically, or diagonally wins. A run longer than five (an overline)
// still counts as a win. If the board fills with no winning line the game
// is a draw.
package engine
