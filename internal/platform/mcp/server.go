// Package mcp exposes a 2048 game as Model Context Protocol tools so an
// agent can play over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/session"
)

// ClientID is the best-score slot used by the MCP server.
const ClientID = "mcp"

const instructions = `2048 - MCP Interface

Slide the tiles on a 4x4 board. Equal tiles that collide merge into their sum,
and the merged value is added to the score. After every move that changes the
board a new tile (2, or rarely 4) appears. Reach 2048 to win; you may keep
playing afterwards. The game is lost when the board is full and no two
neighbours are equal.

AVAILABLE TOOLS:
- state: current board, score, best score, status and legal moves
- move: slide the tiles left, right, up or down
- new_game: abandon the current game and start over`

// Server is an MCP tool server around one session. Tool calls may arrive
// concurrently; the session is guarded by a mutex.
type Server struct {
	mu        sync.Mutex
	sess      *session.Session
	mcpServer *server.MCPServer
}

// NewServer creates the tool server.
func NewServer(sess *session.Session, version string) *Server {
	s := &Server{sess: sess}
	s.mcpServer = server.NewMCPServer(
		"t2048",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to slide",
					"enum":        []string{"left", "right", "up", "down"},
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Abandon the current game and start a new one",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleNewGame)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves tools over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return textResult(formatState(s.sess.Snapshot(), ""))
}

func (s *Server) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	raw, _ := args["direction"].(string)

	dir, err := engine.ParseDirection(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sess.CanMove() {
		return mcp.NewToolResultError("game over: call new_game to play again"), nil
	}

	out := s.sess.Move(dir)
	var note string
	switch {
	case !out.Changed:
		note = fmt.Sprintf("Moving %s changes nothing.", dir)
	case out.JustWon:
		note = fmt.Sprintf("Moved %s for %d points. You reached 2048!", dir, out.ScoreDelta)
	case out.Status == engine.Lost:
		note = fmt.Sprintf("Moved %s for %d points. No moves left: game over.", dir, out.ScoreDelta)
	default:
		note = fmt.Sprintf("Moved %s for %d points.", dir, out.ScoreDelta)
	}

	return textResult(formatState(s.sess.Snapshot(), note))
}

func (s *Server) handleNewGame(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess.Restart()
	return textResult(formatState(s.sess.Snapshot(), "Started a new game."))
}

func textResult(text string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// formatState renders the board as text followed by the snapshot as JSON.
func formatState(snap session.Snapshot, note string) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("mcp: cannot encode state: %w", err)
	}

	var b strings.Builder
	if note != "" {
		b.WriteString(note)
		b.WriteString("\n\n")
	}
	b.WriteString(formatGrid(snap.Grid))
	fmt.Fprintf(&b, "\nScore: %d  Best: %d  Status: %s\n", snap.Score, snap.Best, snap.Status)
	if len(snap.LegalMoves) > 0 {
		fmt.Fprintf(&b, "Legal moves: %s\n", strings.Join(snap.LegalMoves, ", "))
	}
	b.WriteString("\n")
	b.Write(data)
	return b.String(), nil
}

// formatGrid draws the grid with right-aligned cells and dots for empty ones.
func formatGrid(g engine.Grid) string {
	var b strings.Builder
	for r := range engine.Size {
		for c := range engine.Size {
			if g[r][c] == 0 {
				fmt.Fprintf(&b, "%6s", ".")
			} else {
				fmt.Fprintf(&b, "%6d", g[r][c])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
