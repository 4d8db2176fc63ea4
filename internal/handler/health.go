package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"telesocial-proxy-go/internal/config"
)

// welcomeMessage greets clients on the root route and documents the one
// route that matters.
const welcomeMessage = "Welcome to the TeleSocial Proxy API. Use /api/proxy?url=<target_url> to make a request."

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves the welcome, health and status endpoints.
type HealthHandler struct {
	cfg     *config.Config
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, version: v}
}

// Root returns the welcome message with basic usage info.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": welcomeMessage,
	})
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":       "ok",
		"version":      string(h.version),
		"upstream_url": h.cfg.Upstream.BaseURL,
	})
}
