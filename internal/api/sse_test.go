// sse_test.go - Tests for the upload progress SSE stream
package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/docqa/frontend/internal/testutil"
	"github.com/docqa/frontend/internal/upload"
)

func TestUploadJobEventsStreamsTerminalEvent(t *testing.T) {
	mock := testutil.NewMockBackend()
	uploads := upload.NewManager(mock, nil)
	handler := NewUploadHandler(uploads)

	job, err := uploads.Start("report.pdf", 4, strings.NewReader("data"))
	assert.NoError(t, err)

	// Wait for the background upload to finish so the stream closes after
	// one terminal event.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if j, ok := uploads.Get(job.ID); ok && j.Status != upload.StatusUploading {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/upload/:id/events")
	c.SetParamNames("id")
	c.SetParamValues(job.ID)

	assert.NoError(t, handler.HandleUploadJobEvents(c))
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"type":"complete"`)
}

func TestUploadJobEventsUnknownJob(t *testing.T) {
	mock := testutil.NewMockBackend()
	handler := NewUploadHandler(upload.NewManager(mock, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/upload/:id/events")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.HandleUploadJobEvents(c)
	if assert.Error(t, err) {
		apiErr, ok := err.(*APIError)
		if assert.True(t, ok) {
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
		}
	}
}
