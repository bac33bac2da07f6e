// handlers_documents.go - Document list and selection handlers
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/backend"
	"github.com/docqa/frontend/internal/docs"
	"github.com/docqa/frontend/internal/models"
)

// DocumentsHandlerImpl implements the DocumentsHandler interface
type DocumentsHandlerImpl struct {
	api  backend.API
	docs *docs.Manager
}

// NewDocumentsHandler creates a new documents handler instance
func NewDocumentsHandler(api backend.API, mgr *docs.Manager) DocumentsHandler {
	return &DocumentsHandlerImpl{
		api:  api,
		docs: mgr,
	}
}

type documentListResponse struct {
	Documents []models.Document `json:"documents"`
	Selected  *int64            `json:"selected"`
}

// HandleListDocuments fetches the document list from the backend and returns
// the page state: up to the 5 most recent documents, newest first, with the
// newest auto-selected when nothing was.
func (h *DocumentsHandlerImpl) HandleListDocuments(c echo.Context) error {
	list, err := h.api.ListDocuments(c.Request().Context())
	if err != nil {
		return NewBackendError(backendStatus(err), backend.Message(err, "Error fetching documents"), err)
	}

	h.docs.SetAll(list)
	return c.JSON(http.StatusOK, snapshotResponse(h.docs))
}

type selectDocumentRequest struct {
	ID int64 `json:"id"`
}

// HandleSelectDocument sets the question-answering target document.
func (h *DocumentsHandlerImpl) HandleSelectDocument(c echo.Context) error {
	var req selectDocumentRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.ID == 0 {
		return NewValidationError("id is required")
	}

	if err := h.docs.Select(req.ID); err != nil {
		return NewNotFoundError("document", strconv.FormatInt(req.ID, 10))
	}
	return c.JSON(http.StatusOK, snapshotResponse(h.docs))
}

func snapshotResponse(mgr *docs.Manager) documentListResponse {
	list, selected := mgr.Snapshot()
	if list == nil {
		list = []models.Document{}
	}
	resp := documentListResponse{Documents: list}
	if selected != 0 {
		resp.Selected = &selected
	}
	return resp
}

// backendStatus extracts the backend's HTTP status from an error, 0 when the
// failure never reached the backend.
func backendStatus(err error) int {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
