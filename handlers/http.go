// Package handlers contains http handlers for the probed dev liveness server.
package handlers

import (
	"net/http"
	"time"

	"backendlink/helpers"
	"backendlink/interfaces"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// HTTPServer serves the well-known liveness path discovery probes, plus a small
// info endpoint for humans checking which box answered.
type HTTPServer struct {
	serviceName  string
	startedAt    string
	timeProvider interfaces.TimeProvider
	logger       log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on empty serviceName or nil dependencies.
func NewHTTPServer(serviceName string, timeProvider interfaces.TimeProvider, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer")
	tp := helpers.NilPanic(timeProvider, "handlers.http.go: timeProvider is required")
	return &HTTPServer{
		serviceName:  helpers.StrPanic(serviceName, "handlers.http.go: serviceName is required"),
		startedAt:    tp.Now().UTC().Format(time.RFC3339),
		timeProvider: tp,
		logger:       logger,
	}
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// InfoResponse is the JSON body of GET /info.
type InfoResponse struct {
	Service   string `json:"service"`
	StartedAt string `json:"started_at"`
	Now       string `json:"now"`
}

// Health (GET /health) answers the liveness probe. Always 200 with {"status":"ok"} — a probed that is up is alive; anything more belongs to the real backend.
func (h *HTTPServer) Health(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Info (GET /info) returns the service name, start time and current time, so a developer scanning a LAN can tell which machine answered.
func (h *HTTPServer) Info(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, InfoResponse{
		Service:   h.serviceName,
		StartedAt: h.startedAt,
		Now:       h.timeProvider.Now().UTC().Format(time.RFC3339),
	})
}

// RegisterHandlers registers the probed routes on e.
func RegisterHandlers(e *echo.Echo, h *HTTPServer) {
	e.GET("/health", h.Health)
	e.GET("/info", h.Info)
}
