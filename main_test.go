package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omok-games/fiverow/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Five in a Row Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func testOptions(t *testing.T) serverOptions {
	t.Helper()
	configDir := t.TempDir()
	classic := `{
		"name": "Classic",
		"description": "Standard 15x15 board",
		"board_size": 15,
		"win_length": 5,
		"history_limit": 0
	}`
	if err := os.WriteFile(filepath.Join(configDir, "classic.json"), []byte(classic), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return serverOptions{
		Host:        "localhost",
		Port:        8080,
		ConfigDir:   configDir,
		SessionsDir: filepath.Join(t.TempDir(), "sessions"),
	}
}

func TestInitializeServices(t *testing.T) {
	gameService, err := initializeServices(testOptions(t))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	opts := testOptions(t)
	opts.ConfigDir = "/non/existent/path"

	_, err := initializeServices(opts)
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestMCPHTTPHandler_MethodNotAllowed(t *testing.T) {
	handler := mcpHTTPHandler(mcp.NewClient("http://localhost:8080"))

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestMCPHTTPHandler_RespondsWithJSON(t *testing.T) {
	handler := mcpHTTPHandler(mcp.NewClient("http://localhost:8080"))

	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	req := httptest.NewRequest(http.MethodPost, "/mcp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
}

// Note: main(), runServe(), and runStdioMCP() start servers and block, so
// they are exercised end to end rather than unit tested here.
