// handlers_health_test.go - Tests for the backend availability handler
package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/docqa/frontend/internal/testutil"
)

func TestHealthHandler(t *testing.T) {
	e := echo.New()

	mock := testutil.NewMockBackend()
	h := NewHealthHandler(mock, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if assert.NoError(t, h.HandleHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	}

	mock.HealthErr = errors.New("connection refused")
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if assert.NoError(t, h.HandleHealth(c)) {
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unreachable"`)
		assert.Contains(t, rec.Body.String(), "connection refused")
	}
}
