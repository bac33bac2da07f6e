// handlers_health.go - Backend availability handler
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/backend"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	api     backend.API
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(api backend.API, version string) HealthHandler {
	return &HealthHandlerImpl{
		api:     api,
		version: version,
	}
}

// HandleHealth probes the backend and reports whether the page can expect
// uploads and questions to succeed.
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	if err := h.api.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unreachable",
			"version": h.version,
			"message": backend.Message(err, "Server is not responding."),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	})
}
