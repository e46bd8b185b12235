// Package server exposes the solix operations as MCP tools over the
// streamable HTTP transport.
package server

import (
	"errors"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP server whose tools are the solix operations
type Server struct {
	mcpServer *mcpserver.MCPServer
	config    *Config
}

// NewServer creates an MCP server with every solix operation registered as a tool
func NewServer(name, version string, config *Config) (*Server, error) {
	if config == nil || config.Service == nil {
		return nil, errors.New("mcp server requires a service")
	}

	mcpServer := mcpserver.NewMCPServer(name, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	s := &Server{mcpServer: mcpServer, config: config}
	for _, t := range tools() {
		mcpServer.AddTool(t.tool, s.handle(t))
	}
	return s, nil
}

// Handler returns the streamable HTTP handler, suitable for mounting at /mcp
func (s *Server) Handler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithStateLess(s.config.Stateless),
	)
}

// Start serves the MCP endpoint on its own listener at addr
func (s *Server) Start(addr string) error {
	s.config.logger().Info("starting mcp server", "addr", addr, "tools", len(tools()))
	return mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithStateLess(s.config.Stateless),
	).Start(addr)
}

// GetMCPServer returns the underlying MCP server (for advanced usage)
func (s *Server) GetMCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}
