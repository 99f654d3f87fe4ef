// Package api provides the HTTP REST surface of the five-in-a-row server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//   - POST /api/sessions/import - Restore a session from an exported save
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/place - Place a stone {"row": r, "col": c}
//   - POST /api/sessions/{id}/undo - Undo the most recent move
//   - POST /api/sessions/{id}/pause - Pause the game
//   - POST /api/sessions/{id}/resume - Resume a paused game
//   - POST /api/sessions/{id}/reset - Start a fresh game
//   - GET /api/sessions/{id}/history - Get move history with pagination
//   - GET /api/sessions/{id}/export - Export the full game for transfer
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a configuration
//
// All endpoints accept and return JSON. Errors come back as
// {"error": "message"} with a status code reflecting the cause: 404 for
// unknown sessions and configs, 409 for moves the rules reject, 400 for
// malformed input and corrupt saves.
//
// The /ws endpoint upgrades to WebSocket for live board updates; pass the
// target session as ?session={id}.
package api
