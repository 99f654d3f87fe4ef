package session

import (
	"testing"
	"time"

	"github.com/omok-games/fiverow/game/engine"
)

func testConfig() *engine.Config {
	return &engine.Config{
		Name:      "Test",
		BoardSize: 9,
		WinLength: 5,
	}
}

func TestCreateSession(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("game1", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID != "game1" {
		t.Errorf("expected ID game1, got %s", sess.ID)
	}
	if sess.Coordinator == nil {
		t.Fatal("expected coordinator to be set")
	}
	if got := sess.Coordinator.CurrentPlayer(); got != engine.Black {
		t.Errorf("new session should start with black to move, got %v", got)
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 session, got %d", m.Count())
	}
}

func TestCreateGeneratesID(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(sess.ID) != 8 {
		t.Errorf("expected generated 8-char ID, got %q", sess.ID)
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	m := NewManager()

	if _, err := m.Create("game1", testConfig()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := m.Create("GAME1", testConfig()); err != ErrSessionAlreadyExists {
		t.Errorf("expected ErrSessionAlreadyExists for case-insensitive duplicate, got %v", err)
	}
}

func TestCreateInvalidConfig(t *testing.T) {
	m := NewManager()

	bad := &engine.Config{Name: "Bad", BoardSize: 2, WinLength: 5}
	if _, err := m.Create("game1", bad); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("Game1", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sess, err := m.Get("game1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess.ID != "Game1" {
		t.Errorf("expected original ID preserved, got %s", sess.ID)
	}
}

func TestGetMissing(t *testing.T) {
	m := NewManager()
	if _, err := m.Get("nope"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("game1", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.Delete("game1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get("game1"); err != ErrSessionNotFound {
		t.Errorf("expected session gone after delete, got %v", err)
	}
	if err := m.Delete("game1"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestList(t *testing.T) {
	m := NewManager()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := m.Create(id, testConfig()); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}
	if got := len(m.List()); got != 3 {
		t.Errorf("expected 3 sessions, got %d", got)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	m := NewManager()
	sess, err := m.Create("game1", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := sess.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	if err := m.UpdateLastAccessed("game1"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("expected LastAccessedAt to advance")
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager()
	old, err := m.Create("old", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("fresh", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, err := m.Get("old"); err != ErrSessionNotFound {
		t.Errorf("expected old session gone, got %v", err)
	}
	if _, err := m.Get("fresh"); err != nil {
		t.Errorf("expected fresh session to survive: %v", err)
	}
}
