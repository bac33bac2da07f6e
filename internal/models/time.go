package models

import (
	"fmt"
	"strings"
	"time"
)

// APITime wraps time.Time to accept the backend's timestamp formats. The
// backend emits Python isoformat strings, which omit the timezone suffix that
// RFC 3339 requires.
type APITime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses the timestamp, trying each known layout in order.
func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp format: %q", s)
}
