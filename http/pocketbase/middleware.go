// Package pocketbase serves the solix operations on a PocketBase router.
// Like the gin and chi adapters it only translates core.RequestEvent to the
// endpoint table and shared helpers of the parent http package.
package pocketbase

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/solix"
	httpx "github.com/mark3labs/solix/http"
	"github.com/mark3labs/solix/http/internal/helpers"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// Action is a PocketBase route handler.
type Action = func(*core.RequestEvent) error

// Routes is the part of a PocketBase router (or route group) that solix
// registers on. *router.Router and *router.RouterGroup both satisfy it.
type Routes interface {
	GET(path string, action Action) *router.Route[*core.RequestEvent]
	POST(path string, action Action) *router.Route[*core.RequestEvent]
	Any(path string, action Action) *router.Route[*core.RequestEvent]
}

// Bind registers the solix routes on app's router every time it starts serving.
//
// Example usage:
//
//	app := pocketbase.New()
//	pbsolix.Bind(app, &httpx.Config{Service: svc})
//	app.Start()
func Bind(app core.App, config *httpx.Config) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		Register(se.Router, config)
		return se.Next()
	})
}

// Register adds the solix routes to r.
func Register(r Routes, config *httpx.Config) {
	for _, ep := range httpx.Endpoints() {
		r.POST(ep.Path, Handler(config, ep))
	}
	r.GET("/health", func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, solix.HealthResponse{Status: "ok"})
	})
	if config.Metrics != nil {
		r.GET("/metrics", wrap(config.Metrics.Handler()))
	}
	if config.MCP != nil {
		r.Any("/mcp", wrap(config.MCP))
	}
}

// Handler returns a PocketBase action running a single endpoint.
func Handler(config *httpx.Config, ep httpx.Endpoint) Action {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(e *core.RequestEvent) error {
		start := time.Now()

		body, err := helpers.ReadBody(e.Request.Body, config.MaxBodyBytes)
		reply := httpx.Reply{Result: solix.Fail[struct{}](err), Err: err}
		if err == nil {
			reply = ep.Invoke(config.Service, body)
		}

		status := helpers.StatusFor(reply.Err)
		config.Metrics.Observe(ep.Operation, helpers.Outcome(reply.Err), time.Since(start))
		if reply.Err != nil {
			logger.Warn("request failed",
				"path", ep.Path,
				"status", status,
				"code", solix.CodeOf(reply.Err),
			)
		}
		return e.JSON(status, reply.Result)
	}
}

func wrap(h http.Handler) Action {
	return func(e *core.RequestEvent) error {
		h.ServeHTTP(e.Response, e.Request)
		return nil
	}
}
