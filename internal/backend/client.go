// Package backend is the HTTP client for the remote question-answering API.
// The service owns document storage, PDF text extraction and inference; this
// client only shuttles requests and surfaces its errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/docqa/frontend/internal/models"
)

// ProgressFunc receives byte-level progress while an upload body streams.
type ProgressFunc func(sent, total int64)

// API is the backend surface the front end consumes.
type API interface {
	Health(ctx context.Context) error
	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadPDF(ctx context.Context, filename string, size int64, r io.Reader, onProgress ProgressFunc) (*models.Document, error)
	AskQuestion(ctx context.Context, documentID int64, question string) (*models.Answer, error)
}

// healthTimeout bounds the pre-flight probe so a dead backend fails fast
// instead of stalling the upload form.
const healthTimeout = 2 * time.Second

// Client talks to the backend over plain HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Health probes the backend's /health/ endpoint. Any transport failure or
// non-2xx status means the backend is unavailable.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health/", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}

	// The backend reports component health in the body even on 200.
	var status models.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err == nil {
		if status.Status != "" && status.Status != "healthy" && status.Status != "ok" {
			return fmt.Errorf("backend reported status %q", status.Status)
		}
	}
	return nil
}

// ListDocuments fetches the uploaded-documents list from /documents/.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/documents/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeStatusError(resp)
	}

	var docs []models.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decoding document list: %w", err)
	}
	return docs, nil
}

// UploadPDF streams the file to /upload_pdf/ as the multipart form field
// "file", reporting progress as bytes leave the reader. The request is never
// retried or cancelled once issued.
func (c *Client) UploadPDF(ctx context.Context, filename string, size int64, r io.Reader, onProgress ProgressFunc) (*models.Document, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := &progressReader{r: r, total: size, fn: onProgress}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload_pdf/", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeStatusError(resp)
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &doc, nil
}

// AskQuestion posts the question to /ask_question/ and returns the answer.
func (c *Client) AskQuestion(ctx context.Context, documentID int64, question string) (*models.Answer, error) {
	body, err := json.Marshal(models.AskRequest{
		DocumentID: documentID,
		Question:   question,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/ask_question/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeStatusError(resp)
	}

	var answer models.Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decoding answer: %w", err)
	}
	return &answer, nil
}

// progressReader counts bytes as the upload body is consumed.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
