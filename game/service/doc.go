// Package service defines the application-facing facade over game
// sessions: creating and listing games, placing stones, undoing moves,
// pausing and resuming, history queries, and export/import.
//
// GameService is consumed by the HTTP API and the MCP transport. It is the
// layer that serializes turn operations: each session carries a mutex so
// exactly one place/undo/reset is in flight per game, which is the
// concurrency contract the coordinator relies on.
//
// The package also declares the SessionManager and ConfigManager interfaces
// implemented by the session and config packages, keeping the dependency
// direction pointing inward.
package service
