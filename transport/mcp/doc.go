// Package mcp provides a Model Context Protocol surface for the
// five-in-a-row server.
//
// The MCP server is a thin client over the REST API: every tool call is
// translated into an HTTP request and the JSON response is rendered as
// text with an ASCII board, so AI agents and human operators see the same
// state the web clients do.
//
// MCP Tools:
//   - create_game: Create a new game session with config selection
//   - list_games: List all active sessions
//   - game_state: Get the board, turn, and phase of a session
//   - place_stone: Place a stone at a row/column intersection
//   - undo_move: Take back the most recent move
//   - pause_game / resume_game: Gate and reopen a session
//   - reset_game: Discard the current game and start fresh
//   - move_history: Retrieve move history with pagination
//   - export_game: Dump the full game in its transfer form
//   - list_configs: List available board configurations
//   - game_instructions: Get rules and usage notes
//
// Transport Modes:
//   - Stdio: direct stdio communication for local MCP clients
//   - HTTP: the /mcp endpoint on the main HTTP server
package mcp
