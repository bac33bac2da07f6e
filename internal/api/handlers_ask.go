// handlers_ask.go - Question submission handler
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/backend"
)

// AskHandlerImpl implements the AskHandler interface
type AskHandlerImpl struct {
	api backend.API
}

// NewAskHandler creates a new ask handler instance
func NewAskHandler(api backend.API) AskHandler {
	return &AskHandlerImpl{
		api: api,
	}
}

type askRequest struct {
	DocumentID int64  `json:"document_id"`
	Question   string `json:"question"`
}

// HandleAsk submits the trimmed question for the given document to the
// backend and returns its answer. Blank questions are rejected before any
// backend call.
func (h *AskHandlerImpl) HandleAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return NewValidationError("Question cannot be empty.")
	}
	if req.DocumentID == 0 {
		return NewValidationError("document_id is required")
	}

	answer, err := h.api.AskQuestion(c.Request().Context(), req.DocumentID, question)
	if err != nil {
		return NewBackendError(backendStatus(err), backend.Message(err, "Error getting answer"), err)
	}

	return c.JSON(http.StatusOK, answer)
}
