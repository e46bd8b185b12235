// Package http serves the solix operations over HTTP using the standard
// library mux. The chi and gin subpackages are thin adapters over the same
// endpoint table and helpers.
package http

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/http/internal/helpers"
	"github.com/mark3labs/solix/metrics"
	"github.com/mark3labs/solix/service"
)

// Config holds the configuration for the solix HTTP handlers.
type Config struct {
	// Service runs the operations (required).
	Service *service.Service

	// Logger receives one line per request. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records per-operation counters and latency. Optional; when set,
	// GET /metrics is served.
	Metrics *metrics.Metrics

	// MaxBodyBytes caps request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// NewHandler returns an http.Handler serving every solix route on a stdlib mux,
// wrapped in request logging.
func NewHandler(config *Config) http.Handler {
	mux := http.NewServeMux()
	for _, ep := range Endpoints() {
		mux.Handle("POST "+ep.Path, ServeEndpoint(config, ep))
	}
	mux.HandleFunc("GET /health", Health)
	if config.Metrics != nil {
		mux.Handle("GET /metrics", config.Metrics.Handler())
	}
	if config.MCP != nil {
		mux.Handle("/mcp", config.MCP)
	}
	return LoggingMiddleware(config.logger())(mux)
}

// ServeEndpoint adapts an Endpoint to an http.HandlerFunc.
func ServeEndpoint(config *Config, ep Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		body, err := helpers.ReadBody(r.Body, config.MaxBodyBytes)
		reply := Reply{Result: solix.Fail[struct{}](err), Err: err}
		if err == nil {
			reply = ep.Invoke(config.Service, body)
		}

		config.Metrics.Observe(ep.Operation, helpers.Outcome(reply.Err), time.Since(start))
		if reply.Err != nil {
			config.logger().Debug("operation failed",
				"operation", ep.Operation,
				"code", solix.CodeOf(reply.Err),
			)
		}
		helpers.WriteJSON(w, helpers.StatusFor(reply.Err), reply.Result)
	}
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, solix.HealthResponse{Status: "ok"})
}

// LoggingMiddleware logs one line per request: Info for success, Warn for 4xx
// and 5xx responses.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{w: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			}
			if rec.status >= 400 {
				logger.Warn("request failed", attrs...)
				return
			}
			logger.Info("request", attrs...)
		})
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	w         http.ResponseWriter
	status    int
	committed bool
}

func (r *statusRecorder) Header() http.Header {
	return r.w.Header()
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	// Write without WriteHeader implies 200 OK.
	if !r.committed {
		r.WriteHeader(http.StatusOK)
	}
	return r.w.Write(b)
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	if r.committed {
		return
	}
	r.committed = true
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// Flush implements http.Flusher to support streaming responses (MCP uses SSE).
func (r *statusRecorder) Flush() {
	if flusher, ok := r.w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker to support connection hijacking.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := r.w.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, errors.New("hijacking not supported")
}
