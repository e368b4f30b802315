// ABOUTME: MCP server setup for the habit tracker.
// ABOUTME: Wraps the MCP server around a shared application instance.
package mcp

import (
	"context"

	"github.com/harperreed/habits/internal/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with application access.
type Server struct {
	mcpServer *mcp.Server
	app       *app.App
}

// NewServer creates a new MCP server over the given application.
func NewServer(a *app.App) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "habits",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		app:       a,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
// Pending writes are flushed when the session ends.
func (s *Server) Serve(ctx context.Context) error {
	defer s.app.Flush()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
