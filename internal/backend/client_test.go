package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "filename": "a.pdf", "upload_date": "2024-03-01T10:00:00"},
			{"id": 2, "filename": "b.pdf", "upload_date": "2024-03-02T10:00:00"}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	docs, err := c.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Filename != "a.pdf" || docs[1].ID != 2 {
		t.Errorf("unexpected documents: %+v", docs)
	}
}

func TestAskQuestionDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail": "document not found"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.AskQuestion(context.Background(), 42, "what is this?")
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", se.StatusCode)
	}
	if got := Message(err, "Error getting answer"); got != "document not found" {
		t.Errorf("expected detail message, got %q", got)
	}
}

func TestAskQuestionSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask_question/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"document_id":7`) {
			t.Errorf("missing document_id in body: %s", body)
		}
		if !strings.Contains(string(body), `"question":"what?"`) {
			t.Errorf("missing question in body: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"answer": "because", "confidence": 1.0, "document_id": 7}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	answer, err := c.AskQuestion(context.Background(), 7, "what?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Answer != "because" {
		t.Errorf("unexpected answer: %q", answer.Answer)
	}
}

func TestUploadPDFMultipartAndProgress(t *testing.T) {
	content := strings.Repeat("x", 64*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload_pdf/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected multipart field 'file': %v", err)
		}
		defer file.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if len(data) != len(content) {
			t.Errorf("expected %d bytes, got %d", len(content), len(data))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 9, "filename": "report.pdf", "upload_date": "2024-03-01T10:00:00"}`)
	}))
	defer srv.Close()

	var lastSent, total int64
	c := NewClient(srv.URL)
	doc, err := c.UploadPDF(context.Background(), "report.pdf", int64(len(content)), strings.NewReader(content), func(sent, tot int64) {
		lastSent = sent
		total = tot
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 9 {
		t.Errorf("expected document id 9, got %d", doc.ID)
	}
	if lastSent != int64(len(content)) {
		t.Errorf("expected progress to reach %d bytes, got %d", len(content), lastSent)
	}
	if total != int64(len(content)) {
		t.Errorf("expected total %d, got %d", len(content), total)
	}
}

func TestHealthUnhealthyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status": "unhealthy", "database": "disconnected"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Health(context.Background()); err == nil {
		t.Error("expected error for unhealthy backend")
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // reachable URL, dead server

	c := NewClient(srv.URL)
	if err := c.Health(context.Background()); err == nil {
		t.Error("expected transport error")
	}
}

func TestMessagePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{
			name:     "server detail wins",
			err:      &StatusError{StatusCode: 500, Detail: "document not found"},
			fallback: "Error getting answer",
			want:     "document not found",
		},
		{
			name:     "status without detail falls back",
			err:      &StatusError{StatusCode: 500},
			fallback: "Error getting answer",
			want:     "Error getting answer",
		},
		{
			name:     "transport message",
			err:      errors.New("connection refused"),
			fallback: "Error uploading file",
			want:     "connection refused",
		},
		{
			name:     "nil error",
			err:      nil,
			fallback: "Error uploading file",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err, tt.fallback); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
