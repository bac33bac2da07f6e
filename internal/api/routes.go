// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/backend"
	"github.com/docqa/frontend/internal/docs"
	"github.com/docqa/frontend/internal/upload"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	API     backend.API
	Docs    *docs.Manager
	Uploads *upload.Manager
	Version string
}

// Handlers holds all handler instances
type Handlers struct {
	Documents DocumentsHandler
	Upload    UploadHandler
	Ask       AskHandler
	Health    HealthHandler
	WS        *WebSocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Documents: NewDocumentsHandler(deps.API, deps.Docs),
		Upload:    NewUploadHandler(deps.Uploads),
		Ask:       NewAskHandler(deps.API),
		Health:    NewHealthHandler(deps.API, deps.Version),
		WS:        NewWebSocketHandler(deps.Uploads),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	apiGroup := e.Group("/api")

	// Backend availability
	apiGroup.GET("/health", h.Health.HandleHealth)

	// Recent documents and selection
	apiGroup.GET("/documents", h.Documents.HandleListDocuments)
	apiGroup.POST("/documents/select", h.Documents.HandleSelectDocument)

	// Upload and progress tracking
	apiGroup.POST("/upload", h.Upload.HandleUpload)
	apiGroup.GET("/upload/:id", h.Upload.HandleUploadJob)
	apiGroup.GET("/upload/:id/events", h.Upload.HandleUploadJobEvents)
	apiGroup.GET("/ws/uploads", h.WS.HandleWebSocket)

	// Question answering
	apiGroup.POST("/ask", h.Ask.HandleAsk)
}
