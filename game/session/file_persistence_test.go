package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
)

func newTestPersistence(t *testing.T) *FilePersistence {
	t.Helper()
	fp, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	return fp
}

func TestSaveAndLoadSession(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	sess, err := m.Create("game1", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	moves := [][2]int{{4, 4}, {3, 3}, {4, 5}}
	for _, mv := range moves {
		if _, err := sess.Coordinator.PlaceAt(mv[0], mv[1]); err != nil {
			t.Fatalf("PlaceAt(%d,%d) failed: %v", mv[0], mv[1], err)
		}
	}
	if err := m.Save("game1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fp.Load("game1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != "game1" {
		t.Errorf("expected ID game1, got %s", loaded.ID)
	}
	if got := loaded.Coordinator.MoveNumber(); got != 4 {
		t.Errorf("expected move number 4 after restore, got %d", got)
	}
	if got := loaded.Coordinator.CurrentPlayer(); got != engine.White {
		t.Errorf("expected white to move after restore, got %v", got)
	}
	board := loaded.Coordinator.BoardSnapshot()
	if board[4][4] != engine.Black || board[3][3] != engine.White || board[4][5] != engine.Black {
		t.Error("restored board does not match played moves")
	}
	if got := loaded.Coordinator.Phase(); got != coordinator.PhasePlaying {
		t.Errorf("expected playing phase after restore, got %v", got)
	}
}

func TestLoadMissingSession(t *testing.T) {
	fp := newTestPersistence(t)
	if _, err := fp.Load("nope"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetFallsBackToPersistence(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	sess, err := m.Create("game1", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := sess.Coordinator.PlaceAt(0, 0); err != nil {
		t.Fatalf("PlaceAt failed: %v", err)
	}
	if err := m.Save("game1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Drop from memory, then Get should revive it from disk.
	if err := m.DeleteFromMemory("game1"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	revived, err := m.Get("game1")
	if err != nil {
		t.Fatalf("Get after eviction failed: %v", err)
	}
	if revived.Coordinator.BoardSnapshot()[0][0] != engine.Black {
		t.Error("revived session lost board state")
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	if _, err := m.Create("game1", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !fp.Exists("game1") {
		t.Fatal("expected session file after create")
	}
	if err := m.Delete("game1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("game1") {
		t.Error("expected session file removed")
	}
}

func TestListAll(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	for _, id := range []string{"a", "b"} {
		if _, err := m.Create(id, testConfig()); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 persisted sessions, got %d", len(ids))
	}
}

func TestLoadPersistedSessions(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	m1 := NewManagerWithPersistence(fp)
	sess, err := m1.Create("game1", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := sess.Coordinator.PlaceAt(2, 2); err != nil {
		t.Fatalf("PlaceAt failed: %v", err)
	}
	if err := m1.SaveAllSessions(); err != nil {
		t.Fatalf("SaveAllSessions failed: %v", err)
	}

	// A second manager over the same directory picks the session up.
	m2 := NewManagerWithPersistence(fp)
	if err := m2.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if m2.Count() != 1 {
		t.Fatalf("expected 1 loaded session, got %d", m2.Count())
	}
	revived, err := m2.Get("game1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if revived.Coordinator.BoardSnapshot()[2][2] != engine.Black {
		t.Error("restored session lost board state")
	}
}

func TestSaveWarnsWhenHistoryTruncated(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	cfg := &engine.Config{
		Name:         "Capped",
		BoardSize:    5,
		WinLength:    5,
		HistoryLimit: 2,
	}
	sess, err := m.Create("capped1", cfg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Four moves against a two-move cap evicts the oldest pair.
	moves := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for _, mv := range moves {
		if _, err := sess.Coordinator.PlaceAt(mv[0], mv[1]); err != nil {
			t.Fatalf("PlaceAt(%d,%d) failed: %v", mv[0], mv[1], err)
		}
	}

	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	if err := m.Save("capped1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.Contains(buf.String(), "cannot be restored") {
		t.Errorf("expected a warning about an unrestorable save, got log output: %s", buf.String())
	}
	if !fp.Exists("capped1") {
		t.Error("truncated save should still be written to disk")
	}
	if _, err := fp.Load("capped1"); !errors.Is(err, coordinator.ErrCorruptSave) {
		t.Errorf("expected ErrCorruptSave loading a truncated save, got %v", err)
	}
}
