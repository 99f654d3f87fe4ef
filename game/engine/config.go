package engine

import "fmt"

// Config represents a game configuration loaded from JSON.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	WinLength   int    `json:"win_length"`
	// HistoryLimit bounds move-history retention. Zero means unbounded;
	// when exceeded the oldest moves are evicted and can no longer be
	// undone.
	HistoryLimit int `json:"history_limit"`
}

// DefaultConfig returns the built-in classic configuration: a 15×15 board,
// five to win, unbounded history.
func DefaultConfig() *Config {
	return &Config{
		Name:         "Classic",
		Description:  "Standard 15x15 five-in-a-row board",
		BoardSize:    DefaultBoardSize,
		WinLength:    DefaultWinLength,
		HistoryLimit: 0,
	}
}

// ValidateConfig checks a configuration for structural errors.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if cfg.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if cfg.BoardSize < MinBoardSize || cfg.BoardSize > MaxBoardSize {
		return fmt.Errorf("board_size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, cfg.BoardSize)
	}
	winLength := cfg.WinLength
	if winLength == 0 {
		winLength = DefaultWinLength
	}
	if winLength < MinWinLength || winLength > cfg.BoardSize {
		return fmt.Errorf("win_length must be between %d and board_size (%d), got %d", MinWinLength, cfg.BoardSize, cfg.WinLength)
	}
	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("history_limit cannot be negative, got %d", cfg.HistoryLimit)
	}
	return nil
}
