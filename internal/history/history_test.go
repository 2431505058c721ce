package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/resters/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSaveAndRecent(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	req := types.FetchRequest{Method: types.MethodGet, URL: "https://example.com/a"}
	success := types.Success{Status: 200, Reason: "OK", Body: []byte(`{}`), Duration: 15 * time.Millisecond}
	if _, err := m.Save(types.NewHistoryEntry(req, success, base)); err != nil {
		t.Fatal(err)
	}

	req2 := types.FetchRequest{Method: types.MethodPost, URL: "https://example.com/b"}
	failure := types.TransportError{Message: "connection refused"}
	id, err := m.Save(types.NewHistoryEntry(req2, failure, base.Add(time.Second)))
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("expected a row id")
	}

	entries, err := m.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	newest := entries[0]
	if newest.Method != types.MethodPost || newest.Kind != types.KindTransportError {
		t.Errorf("newest = %+v", newest)
	}
	if newest.Error != "connection refused" {
		t.Errorf("Error = %q", newest.Error)
	}
	if !newest.Timestamp.Equal(base.Add(time.Second)) {
		t.Errorf("Timestamp = %v", newest.Timestamp)
	}

	oldest := entries[1]
	if oldest.Status != 200 || oldest.Reason != "OK" {
		t.Errorf("oldest = %+v", oldest)
	}
	if oldest.DurationMs != 15 || oldest.ResponseSize != 2 {
		t.Errorf("duration/size = %d/%d", oldest.DurationMs, oldest.ResponseSize)
	}
}

func TestRecent_Limit(t *testing.T) {
	m := newTestManager(t)
	base := time.Now()

	for i := 0; i < 5; i++ {
		entry := types.HistoryEntry{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Method:    types.MethodGet,
			URL:       "https://example.com",
			Kind:      types.KindHTTPError,
			Status:    500 + i,
		}
		if _, err := m.Save(entry); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Status != 504 || entries[1].Status != 503 {
		t.Errorf("statuses = %d, %d", entries[0].Status, entries[1].Status)
	}

	all, err := m.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("Recent(0) returned %d entries", len(all))
	}
}

func TestPruneDeleteClear(t *testing.T) {
	m := newTestManager(t)
	base := time.Now()

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := m.Save(types.HistoryEntry{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Method:    types.MethodGet,
			URL:       "u",
			Kind:      types.KindSuccess,
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	if err := m.Prune(3); err != nil {
		t.Fatal(err)
	}
	assertCount(t, m, 3)

	if err := m.Delete(ids[3]); err != nil {
		t.Fatal(err)
	}
	assertCount(t, m, 2)

	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	assertCount(t, m, 0)
}

func TestNewManager_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Save(types.HistoryEntry{Method: types.MethodGet, URL: "u", Kind: types.KindSuccess}); err != nil {
		t.Fatal(err)
	}
	m.Close()

	reopened, err := NewManager(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	assertCount(t, reopened, 1)
}

func assertCount(t *testing.T, m *Manager, want int) {
	t.Helper()
	count, err := m.GetCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != want {
		t.Errorf("count = %d, want %d", count, want)
	}
}
