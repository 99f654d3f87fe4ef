// Package history provides the append-only move log with undo-by-popping
// semantics and bounded retention. The log never mutates board or session
// state itself; replay and import go through the coordinator so all three
// stay synchronized.
package history

import "github.com/omok-games/fiverow/game/engine"

// Log is an ordered sequence of applied moves. When a retention limit is
// configured and exceeded, the oldest entries are evicted from the front.
// Evicted moves are gone for good: they can no longer be undone, and
// Append reports each eviction so callers can react (disable undo past the
// horizon, flag partial exports).
type Log struct {
	entries []engine.Move
	limit   int
	evicted int
}

// NewLog creates a log retaining at most limit moves. A limit of zero or
// less means unbounded retention.
func NewLog(limit int) *Log {
	if limit < 0 {
		limit = 0
	}
	return &Log{limit: limit}
}

// Limit returns the configured retention cap (0 = unbounded).
func (l *Log) Limit() int {
	return l.limit
}

// Append adds a move to the end of the log. If the retention limit is
// exceeded the oldest move is evicted and returned with evicted=true.
func (l *Log) Append(m engine.Move) (engine.Move, bool) {
	l.entries = append(l.entries, m)
	if l.limit > 0 && len(l.entries) > l.limit {
		oldest := l.entries[0]
		l.entries = append(l.entries[:0], l.entries[1:]...)
		l.evicted++
		return oldest, true
	}
	return engine.Move{}, false
}

// PopLast removes and returns the most recent move. The second return is
// false when the log is empty; an empty log is the normal nothing-to-undo
// condition, not a fault.
func (l *Log) PopLast() (engine.Move, bool) {
	if len(l.entries) == 0 {
		return engine.Move{}, false
	}
	last := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return last, true
}

// PeekLast returns the most recent move without removing it.
func (l *Log) PeekLast() (engine.Move, bool) {
	if len(l.entries) == 0 {
		return engine.Move{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Clear empties the log and forgets the eviction count. Used on reset.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
	l.evicted = 0
}

// Len returns the number of retained moves.
func (l *Log) Len() int {
	return len(l.entries)
}

// EvictedCount returns how many moves have been evicted since the last
// Clear.
func (l *Log) EvictedCount() int {
	return l.evicted
}

// Truncated reports whether any moves have been evicted.
func (l *Log) Truncated() bool {
	return l.evicted > 0
}

// Horizon returns the move number of the oldest retained move, or 0 when
// the log is empty. Moves before the horizon cannot be undone.
func (l *Log) Horizon() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].Number
}

// Snapshot returns a copy of the retained moves in insertion order.
func (l *Log) Snapshot() []engine.Move {
	out := make([]engine.Move, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByPlayer returns copies of the retained moves made by the given player,
// in insertion order.
func (l *Log) ByPlayer(p engine.Player) []engine.Move {
	var out []engine.Move
	for _, m := range l.entries {
		if m.Player == p {
			out = append(out, m)
		}
	}
	return out
}

// ByMoveNumber returns the retained move with the given number.
func (l *Log) ByMoveNumber(n int) (engine.Move, bool) {
	for _, m := range l.entries {
		if m.Number == n {
			return m, true
		}
	}
	return engine.Move{}, false
}
