// Package docs owns the page-level document state: the recently uploaded
// list and the current selection. Children never mutate it directly; handlers
// go through the manager.
package docs

import (
	"fmt"
	"sort"
	"sync"

	"github.com/docqa/frontend/internal/models"
)

// MaxRecent caps how many documents the page shows.
const MaxRecent = 5

// Manager holds the recent-documents list and selection. The list is always
// sorted newest-first and never exceeds MaxRecent entries.
type Manager struct {
	mu       sync.RWMutex
	list     []models.Document
	selected int64 // 0 means no selection
}

// NewManager creates an empty document manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetAll replaces the list with the backend's documents, sorted descending by
// upload date and truncated to MaxRecent. If the current selection is gone
// (or there was none), the newest document becomes selected.
func (m *Manager) SetAll(docs []models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]models.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadDate.After(sorted[j].UploadDate.Time)
	})
	if len(sorted) > MaxRecent {
		sorted = sorted[:MaxRecent]
	}
	m.list = sorted

	if !m.containsLocked(m.selected) {
		if len(m.list) > 0 {
			m.selected = m.list[0].ID
		} else {
			m.selected = 0
		}
	}
}

// Add prepends a newly uploaded document, evicting the oldest entry beyond
// MaxRecent, and selects it.
func (m *Manager) Add(doc models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A re-upload of the same document replaces the stale entry.
	kept := m.list[:0]
	for _, d := range m.list {
		if d.ID != doc.ID {
			kept = append(kept, d)
		}
	}
	m.list = append([]models.Document{doc}, kept...)
	if len(m.list) > MaxRecent {
		m.list = m.list[:MaxRecent]
	}
	m.selected = doc.ID
}

// Select marks the given document as the question-answering target.
func (m *Manager) Select(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.containsLocked(id) {
		return fmt.Errorf("document %d not in list", id)
	}
	m.selected = id
	return nil
}

// Snapshot returns a copy of the list and the selected id (0 if none).
func (m *Manager) Snapshot() ([]models.Document, int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]models.Document, len(m.list))
	copy(list, m.list)
	return list, m.selected
}

// Selected returns the selected document, if any.
func (m *Manager) Selected() (models.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.list {
		if d.ID == m.selected {
			return d, true
		}
	}
	return models.Document{}, false
}

func (m *Manager) containsLocked(id int64) bool {
	if id == 0 {
		return false
	}
	for _, d := range m.list {
		if d.ID == id {
			return true
		}
	}
	return false
}
