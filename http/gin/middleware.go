// Package gin serves the solix operations on a Gin engine. This package is a
// thin adapter that translates gin.Context to the endpoint table and shared
// helpers of the parent http package.
package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/solix"
	httpx "github.com/mark3labs/solix/http"
	"github.com/mark3labs/solix/http/internal/helpers"
)

// NewEngine returns a Gin engine serving every solix route.
//
// Example usage:
//
//	engine := gin.NewEngine(&httpx.Config{Service: svc})
//	engine.Run(":8080")
func NewEngine(config *httpx.Config) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery(), Logger(config.Logger))

	Register(engine, config)
	return engine
}

// Register adds the solix routes to an existing router group.
func Register(r gin.IRouter, config *httpx.Config) {
	for _, ep := range httpx.Endpoints() {
		r.POST(ep.Path, Handler(config, ep))
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, solix.HealthResponse{Status: "ok"})
	})
	if config.Metrics != nil {
		r.GET("/metrics", gin.WrapH(config.Metrics.Handler()))
	}
	if config.MCP != nil {
		r.Any("/mcp", gin.WrapH(config.MCP))
	}
}

// Handler returns a gin.HandlerFunc running a single endpoint.
func Handler(config *httpx.Config, ep httpx.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		body, err := helpers.ReadBody(c.Request.Body, config.MaxBodyBytes)
		reply := httpx.Reply{Result: solix.Fail[struct{}](err), Err: err}
		if err == nil {
			reply = ep.Invoke(config.Service, body)
		}

		config.Metrics.Observe(ep.Operation, helpers.Outcome(reply.Err), time.Since(start))
		if reply.Err != nil {
			// Surfaces in gin's error log and to custom middleware.
			_ = c.Error(reply.Err)
		}
		c.JSON(helpers.StatusFor(reply.Err), reply.Result)
	}
}

// Logger logs one line per request through slog: Info for success, Warn for
// 4xx and 5xx responses.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "code", solix.CodeOf(c.Errors.Last().Err))
		}
		if status >= 400 {
			logger.Warn("request failed", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}
