// mock_backend.go - Mock backend client for testing
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/docqa/frontend/internal/backend"
	"github.com/docqa/frontend/internal/models"
)

// MockBackend implements backend.API for testing. Call counts let tests
// assert that validation failures never reach the network.
type MockBackend struct {
	mu sync.Mutex

	Documents []models.Document
	AskAnswer *models.Answer
	UploadDoc *models.Document

	HealthErr error
	ListErr   error
	UploadErr error
	AskErr    error

	// UploadFn, when set, replaces the default upload behavior.
	UploadFn func(filename string, size int64, r io.Reader, onProgress backend.ProgressFunc) (*models.Document, error)

	HealthCalls int
	ListCalls   int
	UploadCalls int
	AskCalls    int

	LastQuestion   string
	LastDocumentID int64
}

// NewMockBackend creates an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) Health(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HealthCalls++
	return m.HealthErr
}

func (m *MockBackend) ListDocuments(ctx context.Context) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	docs := make([]models.Document, len(m.Documents))
	copy(docs, m.Documents)
	return docs, nil
}

func (m *MockBackend) UploadPDF(ctx context.Context, filename string, size int64, r io.Reader, onProgress backend.ProgressFunc) (*models.Document, error) {
	m.mu.Lock()
	m.UploadCalls++
	fn := m.UploadFn
	uploadErr := m.UploadErr
	doc := m.UploadDoc
	m.mu.Unlock()

	if fn != nil {
		return fn(filename, size, r, onProgress)
	}
	if uploadErr != nil {
		return nil, uploadErr
	}

	sent, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(sent, size)
	}

	if doc != nil {
		return doc, nil
	}
	return &models.Document{ID: 1, Filename: filename}, nil
}

func (m *MockBackend) AskQuestion(ctx context.Context, documentID int64, question string) (*models.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AskCalls++
	m.LastDocumentID = documentID
	m.LastQuestion = question
	if m.AskErr != nil {
		return nil, m.AskErr
	}
	if m.AskAnswer != nil {
		return m.AskAnswer, nil
	}
	return &models.Answer{Answer: "mock answer", DocumentID: documentID, Question: question}, nil
}

// Counts returns the call counters in one locked read.
func (m *MockBackend) Counts() (health, list, upload, ask int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthCalls, m.ListCalls, m.UploadCalls, m.AskCalls
}
