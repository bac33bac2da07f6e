// Package upload orchestrates PDF uploads to the backend: client-side
// validation, a health pre-flight, and an async job that streams the file
// while tracking byte-level progress.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docqa/frontend/internal/backend"
	"github.com/docqa/frontend/internal/models"
)

// MaxFileSize is the upload size limit.
const MaxFileSize = 10 << 20 // 10 MB

// Status represents the upload job status.
type Status string

const (
	StatusUploading Status = "uploading"
	StatusComplete  Status = "complete"
	StatusError     Status = "error"
)

// Event types pushed to job watchers.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// ErrServerNotResponding is returned when the pre-flight health probe fails;
// the ingestion endpoint is never attempted in that case.
var ErrServerNotResponding = errors.New("backend health probe failed")

// ErrUploadInFlight is returned when a job is started while another is active.
var ErrUploadInFlight = errors.New("another upload is already in progress")

// ValidationError is a pre-network rejection with a user-facing message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateFile checks the selected file before any network I/O happens.
func ValidateFile(filename string, size int64) error {
	if filename == "" {
		return &ValidationError{Reason: "Please select a file to upload."}
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return &ValidationError{Reason: "Only PDF files are allowed."}
	}
	if size <= 0 {
		return &ValidationError{Reason: "The selected file is empty."}
	}
	if size > MaxFileSize {
		return &ValidationError{Reason: "File size must be less than 10MB."}
	}
	return nil
}

// Job is one upload in flight (or finished).
type Job struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	Size        int64            `json:"size"`
	Status      Status           `json:"status"`
	Progress    float64          `json:"progress"`
	Document    *models.Document `json:"document,omitempty"`
	Error       string           `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// Event is a progress update pushed to watchers of a job.
type Event struct {
	Type     string           `json:"type"`
	JobID    string           `json:"jobId"`
	Progress float64          `json:"progress"`
	Document *models.Document `json:"document,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Manager runs upload jobs against the backend. Only one job may be active at
// a time; concurrent starts are rejected rather than queued.
type Manager struct {
	mu        sync.RWMutex
	jobs      map[string]*Job
	watchers  map[string][]chan Event
	api       backend.API
	onSuccess func(models.Document)
	activeID  string
}

// NewManager creates an upload manager. onSuccess is invoked with the
// backend's document metadata after a successful upload; it is the only
// channel through which an upload reaches the page state.
func NewManager(api backend.API, onSuccess func(models.Document)) *Manager {
	return &Manager{
		jobs:      make(map[string]*Job),
		watchers:  make(map[string][]chan Event),
		api:       api,
		onSuccess: onSuccess,
	}
}

// Start validates the file, probes the backend, and begins the upload in the
// background. Validation and probe failures are reported synchronously and
// produce no job; no network I/O happens before validation passes.
func (m *Manager) Start(filename string, size int64, r io.Reader) (*Job, error) {
	if err := ValidateFile(filename, size); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.activeID != "" {
		m.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	// Reserve the slot before the probe so a second form submit cannot race
	// past the guard while the probe is outstanding.
	m.activeID = "pending"
	m.mu.Unlock()

	if err := m.api.Health(context.Background()); err != nil {
		m.releaseActive("pending")
		fmt.Printf("[Upload] health pre-flight failed: %v\n", err)
		return nil, ErrServerNotResponding
	}

	job := &Job{
		ID:        uuid.New().String(),
		Filename:  filename,
		Size:      size,
		Status:    StatusUploading,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.activeID = job.ID
	m.mu.Unlock()

	go m.run(job, r)

	return m.snapshot(job.ID), nil
}

// Get returns a copy of the job, if it exists.
func (m *Manager) Get(id string) (*Job, bool) {
	job := m.snapshot(id)
	return job, job != nil
}

// Watch subscribes to a job's events. The returned cancel func must be called
// when done. A terminal job immediately yields its final event.
func (m *Manager) Watch(id string) (<-chan Event, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, nil, fmt.Errorf("upload job %s not found", id)
	}

	ch := make(chan Event, 16)

	// A finished job yields its final event and a closed channel right away;
	// there is nothing left to subscribe to.
	if job.Status != StatusUploading {
		ch <- terminalEvent(job)
		close(ch)
		return ch, func() {}, nil
	}

	m.watchers[id] = append(m.watchers[id], ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.watchers[id]
		for i, sub := range subs {
			if sub == ch {
				m.watchers[id] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel, nil
}

// CleanupOldJobs drops finished jobs older than maxAge.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, job := range m.jobs {
		if job.Status == StatusUploading {
			continue
		}
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
			delete(m.watchers, id)
		}
	}
}

func (m *Manager) run(job *Job, r io.Reader) {
	defer m.releaseActive(job.ID)

	fmt.Printf("[Upload %s] starting: %s (%d bytes)\n", job.ID[:8], job.Filename, job.Size)

	lastNotified := -1
	onProgress := func(sent, total int64) {
		pct := float64(sent) * 100 / float64(total)
		// Hold at 99 until the backend confirms; 100 means done.
		if pct > 99 {
			pct = 99
		}
		m.updateProgress(job.ID, pct)
		// One event per whole percent keeps watchers from drowning.
		if int(pct) != lastNotified {
			lastNotified = int(pct)
			m.notify(job.ID, Event{Type: EventProgress, JobID: job.ID, Progress: pct})
		}
	}

	doc, err := m.api.UploadPDF(context.Background(), job.Filename, job.Size, r, onProgress)
	if err != nil {
		msg := backend.Message(err, "Error uploading file")
		m.markError(job.ID, msg)
		fmt.Printf("[Upload %s] failed: %s\n", job.ID[:8], msg)
		m.notifyTerminal(job.ID, Event{Type: EventError, JobID: job.ID, Message: msg})
		return
	}

	// Page state updates first so anyone who sees the job complete also sees
	// the new document.
	if m.onSuccess != nil {
		m.onSuccess(*doc)
	}

	m.markComplete(job.ID, doc)
	fmt.Printf("[Upload %s] complete: document %d (%s)\n", job.ID[:8], doc.ID, doc.Filename)
	m.notifyTerminal(job.ID, Event{Type: EventComplete, JobID: job.ID, Progress: 100, Document: doc})
}

// releaseActive frees the single-upload slot, but only if id still owns it;
// a job finishing late must not release a successor's reservation.
func (m *Manager) releaseActive(id string) {
	m.mu.Lock()
	if m.activeID == id {
		m.activeID = ""
	}
	m.mu.Unlock()
}

func (m *Manager) updateProgress(id string, pct float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok && job.Status == StatusUploading {
		job.Progress = pct
	}
}

func (m *Manager) markComplete(id string, doc *models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.Status = StatusComplete
	job.Progress = 100
	job.Document = doc
	now := time.Now()
	job.CompletedAt = &now
	m.activeID = ""
}

func (m *Manager) markError(id string, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.Status = StatusError
	job.Error = msg
	now := time.Now()
	job.CompletedAt = &now
	m.activeID = ""
}

func (m *Manager) notify(id string, ev Event) {
	m.mu.RLock()
	subs := make([]chan Event, len(m.watchers[id]))
	copy(subs, m.watchers[id])
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Slow watcher; drop rather than stall the upload.
		}
	}
}

// notifyTerminal delivers the job's final event to every watcher and closes
// their channels. Progress events may be dropped under backpressure, but the
// final event must land: buffered progress is discarded to make room for it.
func (m *Manager) notifyTerminal(id string, ev Event) {
	m.mu.Lock()
	subs := m.watchers[id]
	delete(m.watchers, id)
	m.mu.Unlock()

	for _, ch := range subs {
	deliver:
		for {
			select {
			case ch <- ev:
				break deliver
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
		close(ch)
	}
}

func (m *Manager) snapshot(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func terminalEvent(job *Job) Event {
	if job.Status == StatusError {
		return Event{Type: EventError, JobID: job.ID, Message: job.Error}
	}
	return Event{Type: EventComplete, JobID: job.ID, Progress: 100, Document: job.Document}
}
