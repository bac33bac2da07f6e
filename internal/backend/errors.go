package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusError is a non-2xx backend response. Detail carries the backend's
// human-readable message when the body had one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// decodeStatusError drains an error response and extracts the optional
// {"detail": "..."} message.
func decodeStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	return &StatusError{
		StatusCode: resp.StatusCode,
		Detail:     payload.Detail,
	}
}

// Message resolves the most specific user-facing text for err: the backend's
// detail field when present, the transport error text otherwise, and fallback
// when neither says anything useful.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return se.Detail
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
