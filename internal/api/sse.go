// sse.go - Server-sent progress stream for upload jobs
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/upload"
)

// HandleUploadJobEvents streams upload job events via SSE until the job
// reaches a terminal state or the client goes away.
func (h *UploadHandlerImpl) HandleUploadJobEvents(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("job id is required")
	}

	events, cancel, err := h.uploads.Watch(id)
	if err != nil {
		return NewNotFoundError("upload job", id)
	}
	defer cancel()

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				// The watcher closes after its final event; nothing follows.
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Response(), "data: %s\n\n", payload)
			c.Response().Flush()
			if ev.Type == upload.EventComplete || ev.Type == upload.EventError {
				return nil
			}
		}
	}
}
