package server

import (
	"log/slog"

	"github.com/mark3labs/solix/metrics"
	"github.com/mark3labs/solix/service"
)

// Config holds configuration for the solix MCP server
type Config struct {
	// Service runs the operations behind every tool (required)
	Service *service.Service

	// Logger receives tool call logs. Defaults to slog.Default()
	Logger *slog.Logger

	// Metrics records tool calls alongside HTTP requests. Optional
	Metrics *metrics.Metrics

	// Stateless disables MCP session tracking on the HTTP transport
	Stateless bool
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
