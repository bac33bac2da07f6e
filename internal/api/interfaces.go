// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// DocumentsHandler handles the recent-documents list and selection
type DocumentsHandler interface {
	HandleListDocuments(c echo.Context) error
	HandleSelectDocument(c echo.Context) error
}

// UploadHandler handles PDF upload operations
type UploadHandler interface {
	HandleUpload(c echo.Context) error
	HandleUploadJob(c echo.Context) error
	HandleUploadJobEvents(c echo.Context) error
}

// AskHandler handles question submission
type AskHandler interface {
	HandleAsk(c echo.Context) error
}

// HealthHandler handles backend availability checks
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
