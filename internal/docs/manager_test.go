package docs

import (
	"fmt"
	"testing"
	"time"

	"github.com/docqa/frontend/internal/models"
)

func doc(id int64, daysAgo int) models.Document {
	return models.Document{
		ID:         id,
		Filename:   fmt.Sprintf("doc-%d.pdf", id),
		UploadDate: models.APITime{Time: time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour)},
	}
}

func TestSetAllSortsAndTruncates(t *testing.T) {
	m := NewManager()

	// Seven documents in scrambled order; ids 1..7, id 7 the newest.
	m.SetAll([]models.Document{
		doc(3, 4), doc(7, 0), doc(1, 6), doc(5, 2), doc(2, 5), doc(6, 1), doc(4, 3),
	})

	list, selected := m.Snapshot()
	if len(list) != MaxRecent {
		t.Fatalf("expected %d documents, got %d", MaxRecent, len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].UploadDate.After(list[i-1].UploadDate.Time) {
			t.Errorf("list not sorted newest-first at index %d", i)
		}
	}
	wantIDs := []int64{7, 6, 5, 4, 3}
	for i, want := range wantIDs {
		if list[i].ID != want {
			t.Errorf("expected id %d at index %d, got %d", want, i, list[i].ID)
		}
	}
	if selected != 7 {
		t.Errorf("expected newest document auto-selected, got %d", selected)
	}
}

func TestSetAllKeepsValidSelection(t *testing.T) {
	m := NewManager()
	m.SetAll([]models.Document{doc(1, 2), doc(2, 1), doc(3, 0)})

	if err := m.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.SetAll([]models.Document{doc(1, 2), doc(2, 1), doc(3, 0), doc(4, 3)})
	_, selected := m.Snapshot()
	if selected != 1 {
		t.Errorf("expected selection to survive refresh, got %d", selected)
	}
}

func TestSetAllEmpty(t *testing.T) {
	m := NewManager()
	m.SetAll(nil)

	list, selected := m.Snapshot()
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
	if selected != 0 {
		t.Errorf("expected no selection, got %d", selected)
	}
}

func TestAddPrependsSelectsAndEvicts(t *testing.T) {
	m := NewManager()
	m.SetAll([]models.Document{doc(1, 5), doc(2, 4), doc(3, 3), doc(4, 2), doc(5, 1)})

	m.Add(doc(6, 0))

	list, selected := m.Snapshot()
	if len(list) != MaxRecent {
		t.Fatalf("expected %d documents, got %d", MaxRecent, len(list))
	}
	if list[0].ID != 6 {
		t.Errorf("expected new document first, got %d", list[0].ID)
	}
	if selected != 6 {
		t.Errorf("expected new document selected, got %d", selected)
	}
	// The oldest of the previous five is gone.
	for _, d := range list {
		if d.ID == 1 {
			t.Error("expected oldest document to be evicted")
		}
	}
}

func TestAddFirstDocument(t *testing.T) {
	m := NewManager()
	m.Add(doc(1, 0))

	list, selected := m.Snapshot()
	if len(list) != 1 {
		t.Fatalf("expected exactly one document, got %d", len(list))
	}
	if selected != 1 {
		t.Errorf("expected the document to be selected, got %d", selected)
	}
}

func TestSelectUnknown(t *testing.T) {
	m := NewManager()
	m.SetAll([]models.Document{doc(1, 0)})

	if err := m.Select(99); err == nil {
		t.Error("expected error selecting unknown document")
	}
	_, selected := m.Snapshot()
	if selected != 1 {
		t.Errorf("failed select should not change selection, got %d", selected)
	}
}
