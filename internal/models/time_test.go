package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAPITimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC3339",
			input: `"2024-03-01T10:30:00Z"`,
			want:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "python isoformat with microseconds",
			input: `"2024-03-01T10:30:00.123456"`,
			want:  time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.UTC),
		},
		{
			name:  "python isoformat without fraction",
			input: `"2024-03-01T10:30:00"`,
			want:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "null",
			input: `null`,
			want:  time.Time{},
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got APITime
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got.Time)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got.Time)
			}
		})
	}
}

func TestDocumentUnmarshal(t *testing.T) {
	payload := `{"id": 3, "filename": "report.pdf", "upload_date": "2024-03-01T10:30:00.123456"}`

	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 3 {
		t.Errorf("expected id 3, got %d", doc.ID)
	}
	if doc.Filename != "report.pdf" {
		t.Errorf("expected filename report.pdf, got %s", doc.Filename)
	}
	if doc.UploadDate.IsZero() {
		t.Error("expected upload_date to be parsed")
	}
}
