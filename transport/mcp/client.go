package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/omok-games/fiverow/game/coordinator"
	"github.com/omok-games/fiverow/game/engine"
	"github.com/omok-games/fiverow/game/service"
)

// Client is a thin MCP client that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Five in a Row",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Five in a Row - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two players, black (X) and white (O), alternate placing stones on the
intersections of a square board. Black moves first. The first player to
line up five stones in a row horizontally, vertically, or diagonally wins.
A full board with no winner is a draw.

AVAILABLE TOOLS:
- create_game: Create a new game session
- list_games: List all active sessions
- game_state: Get the board, turn, and phase of a session
- place_stone: Place a stone at a row/column intersection
- undo_move: Take back the most recent move
- pause_game / resume_game: Gate and reopen a session
- reset_game: Discard the current game and start fresh
- move_history: View past moves
- export_game: Dump the full game for transfer
- list_configs: List available board configurations
- game_instructions: Get comprehensive rules

Coordinates are 0-based: row 0 is the top edge, column 0 is the left edge.`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board config to use (optional, defaults to classic 15x15)",
				},
			},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, whose turn it is, and the game phase",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_stone",
		Description: "Place a stone for the player whose turn it is. Rejected if the cell is occupied, out of bounds, or the game is not active.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the target intersection (0-based, top edge is 0)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the target intersection (0-based, left edge is 0)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind this placement (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handlePlaceStone)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo_move",
		Description: "Take back the most recent move. Undoing the winning move reopens the game.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndoMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pause_game",
		Description: "Pause a running game. Moves and undo are rejected until it is resumed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePauseGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resume_game",
		Description: "Resume a paused game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleResumeGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Discard the current game and start a fresh one on the same board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleResetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"player": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"black", "white"},
					"description": "Only show moves by this player",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "export_game",
		Description: "Export the full game (board dimensions, history, session state) as JSON for transfer",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleExportGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game rules and usage notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs a JSON request against the REST API.
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var info service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\nConfig: %s\n\n%s",
		info.ID, info.ConfigName, formatSnapshot(info.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Games (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := ""
		turn := ""
		if s.Snapshot != nil {
			phase = s.Snapshot.Phase.String()
			turn = s.Snapshot.CurrentPlayer.String()
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Phase: %s, Turn: %s, Created: %s)\n",
			s.ID, s.ConfigName, phase, turn, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.GameSnapshot
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&state)), nil
}

func (c *Client) handlePlaceStone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	rowF, rowOK := args["row"].(float64)
	colF, colOK := args["col"].(float64)
	intent, _ := args["intent"].(string)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	// Intent is rubber duck debugging only.
	_ = intent

	body := map[string]int{
		"row": int(rowF),
		"col": int(colF),
	}

	var result service.PlaceResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/place", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResponse(&result)), nil
}

func (c *Client) handleUndoMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.UndoResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Undid %s move #%d at (%d,%d)\n\n",
		result.Undone.Player, result.Undone.Number, result.Undone.Row, result.Undone.Col)
	b.WriteString(formatSnapshot(result.Snapshot))
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handlePauseGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.phaseOp(request, "pause", "Game paused")
}

func (c *Client) handleResumeGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.phaseOp(request, "resume", "Game resumed")
}

func (c *Client) handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.phaseOp(request, "reset", "Game reset")
}

func (c *Client) phaseOp(request mcp.CallToolRequest, op, message string) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string                `json:"message"`
		State   *service.GameSnapshot `json:"state"`
	}
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, op), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", message, formatSnapshot(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}
	if player, ok := args["player"].(string); ok && player != "" {
		params += fmt.Sprintf("player=%s&", player)
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleExportGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var save coordinator.SavedGame
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/export", sessionID), nil, &save)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(&save, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Exported game %s (%d recorded moves). POST this to /api/sessions/import to restore it:\n\n%s",
		sessionID, len(save.History), string(data))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (id: %s)\n  %s\n  Board: %dx%d, Win length: %d",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.WinLength)
		if config.HistoryLimit > 0 {
			fmt.Fprintf(&b, ", History cap: %d moves", config.HistoryLimit)
		}
		b.WriteString("\n\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Five in a Row - Complete Instructions

GAME OBJECTIVE:
Be the first player to line up five of your stones in an unbroken row.
Rows count horizontally, vertically, and along both diagonals.

GAME MECHANICS:
• Black (X) always moves first, then turns alternate
• Stones are placed on empty intersections and never move again
• A run longer than five still wins; the five cells containing the final
  stone are credited as the winning line
• When the board fills with no winner the game is a draw
• After a win or draw the board is frozen until reset or undo

BOARD DISPLAY:
• . - empty intersection
• X - black stone
• O - white stone
• * - part of the winning line (shown once a game is won)
Rows and columns are labeled with 0-based indices. Row 0 is the top edge.

UNDO:
• undo_move takes back the most recent move and returns the turn to the
  player who made it
• Undoing the final move of a finished game reopens it
• Boards with a history cap can only rewind as far as retained history;
  older moves are permanently settled

PHASES:
• playing - moves and undo are accepted
• paused - everything is rejected until resume
• finished - the game ended; reset starts fresh, undo reopens

SESSION MANAGEMENT:
• Multiple games can run simultaneously, each with its own 8-character ID
• Sessions persist across server restarts
• export_game dumps a game as JSON; POST it to /api/sessions/import to
  restore it, including on another server

STRATEGY NOTES:
• An open four (four in a row with both ends empty) is unstoppable;
  block threes before they extend
• The center of the board touches the most lines; early stones there
  are worth more than edge stones
• Watch both diagonals: most missed threats are diagonal`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

// formatSnapshot renders the board as ASCII with axis labels plus a status
// header.
func formatSnapshot(state *service.GameSnapshot) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Phase: %s | Turn: %s | Move: #%d | Stones: %d\n",
		state.Phase, state.CurrentPlayer, state.MoveNumber, state.MoveCount)
	if state.HistoryTruncated {
		fmt.Fprintf(&b, "History: truncated, %d oldest moves evicted\n", state.EvictedMoves)
	}

	switch state.Outcome.Status {
	case engine.StatusWon:
		fmt.Fprintf(&b, "Result: %s wins\n", state.Outcome.Winner)
	case engine.StatusDrawn:
		b.WriteString("Result: draw\n")
	}
	b.WriteString("\n")

	winning := make(map[engine.Coord]bool, len(state.Outcome.Line))
	for _, cell := range state.Outcome.Line {
		winning[cell] = true
	}

	// Column header, indices mod 10 to stay one character wide.
	b.WriteString("   ")
	for col := 0; col < state.BoardSize; col++ {
		fmt.Fprintf(&b, "%d ", col%10)
	}
	b.WriteString("\n")

	for row := 0; row < state.BoardSize; row++ {
		fmt.Fprintf(&b, "%2d ", row)
		for col := 0; col < state.BoardSize; col++ {
			cell := state.Board[row][col]
			switch {
			case winning[engine.Coord{Row: row, Col: col}]:
				b.WriteString("* ")
			case cell == engine.Black:
				b.WriteString("X ")
			case cell == engine.White:
				b.WriteString("O ")
			default:
				b.WriteString(". ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatPlaceResponse(result *service.PlaceResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s placed move #%d at (%d,%d)\n",
		result.Move.Player, result.Move.Number, result.Move.Row, result.Move.Col)

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.Snapshot))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d)\n",
		history.Page, history.TotalPages, history.TotalMoves)
	if history.Truncated {
		fmt.Fprintf(&b, "Oldest %d moves were evicted by the history cap\n", history.Evicted)
	}
	b.WriteString("\n")

	if len(history.Moves) == 0 {
		b.WriteString("(no moves)")
		return b.String()
	}

	for _, move := range history.Moves {
		fmt.Fprintf(&b, "#%d %s (%d,%d) at %s\n",
			move.Number, move.Player, move.Row, move.Col,
			move.Timestamp.Format("15:04:05"))
	}

	return b.String()
}
