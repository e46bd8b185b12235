// Package chi serves the solix operations on a Chi router. It is a thin
// adapter over the endpoint table and handlers of the parent http package.
package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpx "github.com/mark3labs/solix/http"
)

// NewRouter returns a Chi router serving every solix route.
//
// The router:
//   - Assigns a request ID and resolves the client IP
//   - Recovers from panics with a 500
//   - Logs one line per request through httpx.LoggingMiddleware
//   - Serves GET /health, and GET /metrics when config.Metrics is set
//   - Mounts config.MCP at /mcp when set
//
// Example usage:
//
//	r := chi.NewRouter(&httpx.Config{Service: svc})
//	http.ListenAndServe(":8080", r)
func NewRouter(config *httpx.Config) gochi.Router {
	r := gochi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpx.LoggingMiddleware(config.Logger))

	Mount(r, config)
	return r
}

// Mount registers the solix routes on an existing router without adding
// middleware.
func Mount(r gochi.Router, config *httpx.Config) {
	for _, ep := range httpx.Endpoints() {
		r.Post(ep.Path, httpx.ServeEndpoint(config, ep))
	}
	r.Get("/health", httpx.Health)
	if config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", config.Metrics.Handler())
	}
	if config.MCP != nil {
		r.Handle("/mcp", config.MCP)
	}
}
