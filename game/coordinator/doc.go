// Package coordinator owns one game: the rules engine, the move history
// log, and the session phase machine (Idle → Playing ⇄ Paused → Finished).
//
// All mutation of shared game state funnels through the Coordinator's
// operations: PlaceAt, Undo, StartNewGame, Pause, Resume, and Import. The
// engine and the history log only receive explicit calls and return
// results; nothing reaches into their state directly, which keeps board,
// session, and history in exact lockstep.
//
// Observers subscribe to a closed set of typed events. Notifications are
// synchronous, in-process callbacks fired after the state mutation
// completes and before the triggering operation returns, with the
// mutation-specific event (MoveApplied, UndoApplied, GameReset) delivered
// before any terminal event (GameWon, GameDrawn) and phase transition.
// Re-entering a mutating operation from inside a callback is rejected with
// ErrReentrantCall.
//
// The concurrency model is single-threaded and cooperative: exactly one
// turn operation may be in flight at a time, and serializing calls is the
// caller's responsibility (the service layer holds a per-session mutex).
package coordinator
