// Command validate provides a small CLI that validates board configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size within the supported 5..25 range
//   - Win length at least 3 and no longer than the board edge
//   - History limit non-negative (0 means unbounded)
//   - Reachability of the win length: a capped history must still retain
//     enough moves for a meaningful undo window
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	minBoardSize = 5
	maxBoardSize = 25
	minWinLength = 3
)

// Config mirrors the JSON schema for a board configuration.
type Config struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	BoardSize    int    `json:"board_size"`
	WinLength    int    `json:"win_length"`
	HistoryLimit int    `json:"history_limit"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Config name is required")
	}

	if config.BoardSize < minBoardSize || config.BoardSize > maxBoardSize {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("board_size must be between %d and %d, got %d",
				minBoardSize, maxBoardSize, config.BoardSize))
	}

	if config.WinLength < minWinLength {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("win_length must be at least %d, got %d", minWinLength, config.WinLength))
	}
	if config.BoardSize > 0 && config.WinLength > config.BoardSize {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("win_length (%d) cannot exceed board_size (%d)",
				config.WinLength, config.BoardSize))
	}

	if config.HistoryLimit < 0 {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("history_limit must be non-negative, got %d", config.HistoryLimit))
	}
	// A tiny cap makes undo nearly useless; warn by failing early rather
	// than shipping a config nobody can play with.
	if config.HistoryLimit > 0 && config.HistoryLimit < 2 {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("history_limit of %d retains less than one full turn pair", config.HistoryLimit))
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Win length: %d", config.WinLength))
		if config.HistoryLimit > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ History cap: %d moves", config.HistoryLimit))
		} else {
			result.Errors = append(result.Errors, "✓ History: unbounded")
		}
		maxMoves := config.BoardSize * config.BoardSize
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Max moves before draw: %d", maxMoves))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
