// Package session manages the lifecycle of game sessions: creation with
// uuid-derived IDs, lookup, expiry, and optional persistence.
//
// Persistence stores each session as a JSON file containing the
// coordinator's SavedGame transfer form. Loading goes through the
// coordinator's import path, which reconstructs board, session, and
// history by replaying the recorded moves, so a save that cannot replay is
// rejected instead of producing inconsistent state.
package session
