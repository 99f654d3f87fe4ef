package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"name": "Classic",
		"description": "Standard 15x15 board",
		"board_size": 15,
		"win_length": 5,
		"history_limit": 0
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "config.json" {
		t.Errorf("Expected file name config.json, got %s", result.File)
	}
	if !hasError(result, "✓ Board: 15x15") {
		t.Errorf("Expected board info line, got: %v", result.Errors)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to bad JSON")
	}
	if !hasError(result, "Invalid JSON") {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConfig_BoardSizeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"too small", 4},
		{"too large", 26},
		{"zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, fmt.Sprintf(`{
				"name": "Bad",
				"board_size": %d,
				"win_length": 3
			}`, tt.size))

			result := validateConfig(path)
			if result.Valid {
				t.Error("Expected invalid config")
			}
			if !hasError(result, "board_size must be between") {
				t.Errorf("Expected board_size error, got: %v", result.Errors)
			}
		})
	}
}

func TestValidateConfig_WinLengthConstraints(t *testing.T) {
	path := writeTempConfig(t, `{
		"name": "Bad",
		"board_size": 5,
		"win_length": 2
	}`)
	result := validateConfig(path)
	if result.Valid || !hasError(result, "win_length must be at least") {
		t.Errorf("Expected win_length minimum error, got: %v", result.Errors)
	}

	path = writeTempConfig(t, `{
		"name": "Bad",
		"board_size": 5,
		"win_length": 6
	}`)
	result = validateConfig(path)
	if result.Valid || !hasError(result, "cannot exceed board_size") {
		t.Errorf("Expected win_length overflow error, got: %v", result.Errors)
	}
}

func TestValidateConfig_HistoryLimit(t *testing.T) {
	path := writeTempConfig(t, `{
		"name": "Bad",
		"board_size": 9,
		"win_length": 5,
		"history_limit": -1
	}`)
	result := validateConfig(path)
	if result.Valid || !hasError(result, "history_limit must be non-negative") {
		t.Errorf("Expected negative history_limit error, got: %v", result.Errors)
	}

	path = writeTempConfig(t, `{
		"name": "Bad",
		"board_size": 9,
		"win_length": 5,
		"history_limit": 1
	}`)
	result = validateConfig(path)
	if result.Valid || !hasError(result, "less than one full turn pair") {
		t.Errorf("Expected tiny history_limit error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingName(t *testing.T) {
	path := writeTempConfig(t, `{
		"board_size": 15,
		"win_length": 5
	}`)
	result := validateConfig(path)
	if result.Valid || !hasError(result, "name is required") {
		t.Errorf("Expected missing name error, got: %v", result.Errors)
	}
}
