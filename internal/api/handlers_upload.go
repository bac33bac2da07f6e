// handlers_upload.go - PDF upload handlers
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/upload"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	uploads *upload.Manager
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(uploads *upload.Manager) UploadHandler {
	return &UploadHandlerImpl{
		uploads: uploads,
	}
}

// HandleUpload accepts a PDF as multipart/form-data and starts an async
// upload job against the backend. Validation and pre-flight failures are
// reported immediately; an accepted upload returns the job id for progress
// tracking.
func (h *UploadHandlerImpl) HandleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return NewValidationError("Please select a file to upload.")
	}

	// Reject before reading the body so an oversized file costs nothing.
	if err := upload.ValidateFile(fh.Filename, fh.Size); err != nil {
		return NewValidationError(err.Error())
	}

	src, err := fh.Open()
	if err != nil {
		return NewBadRequestError("failed to open uploaded file", err)
	}
	defer src.Close()

	// The job outlives this request, so the form's temp file cannot back it.
	data, err := io.ReadAll(io.LimitReader(src, upload.MaxFileSize+1))
	if err != nil {
		return NewBadRequestError("failed to read uploaded file", err)
	}
	if int64(len(data)) > upload.MaxFileSize {
		return NewValidationError("File size must be less than 10MB.")
	}

	job, err := h.uploads.Start(fh.Filename, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		var ve *upload.ValidationError
		switch {
		case errors.As(err, &ve):
			return NewValidationError(ve.Reason)
		case errors.Is(err, upload.ErrServerNotResponding):
			return NewServiceUnavailableError("Server is not responding. Please try again later.")
		case errors.Is(err, upload.ErrUploadInFlight):
			return NewConflictError("An upload is already in progress.")
		default:
			return NewBadRequestError("failed to start upload", err)
		}
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"jobId":  job.ID,
		"status": job.Status,
	})
}

// HandleUploadJob returns the current state of an upload job.
func (h *UploadHandlerImpl) HandleUploadJob(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("job id is required")
	}

	job, ok := h.uploads.Get(id)
	if !ok {
		return NewNotFoundError("upload job", id)
	}
	return c.JSON(http.StatusOK, job)
}
