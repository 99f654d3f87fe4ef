// Package websocket implements real-time board updates over WebSocket.
//
// A single Hub fans snapshots and game events out to every client watching
// a session. Clients are read-mostly: the connection exists to push state,
// incoming frames only keep it alive.
package websocket
