package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/fetch"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/logging"
	"github.com/studiowebux/resters/internal/session"
)

// CreateTestModel creates a Model backed by a temporary history database
// and session file. A nil doer performs real HTTP requests.
func CreateTestModel(t *testing.T, doer fetch.Doer) *Model {
	t.Helper()

	tempDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Fetch.PollInterval = time.Millisecond
	cfg.Fetch.Scheme = "http://"
	cfg.Fetch.Presets = []string{"https://example.com/users", "https://example.com/posts"}

	historyMgr, err := history.NewManager(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}

	m, err := New(Options{
		Config:  cfg,
		Logger:  logging.Nop(),
		History: historyMgr,
		Session: session.NewManager(filepath.Join(tempDir, ".session.json")),
		Doer:    doer,
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &m
}

// AssertModelField is a helper to assert model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// pressKey sends a key to the model
func pressKey(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

// typeText sends runes to the model one at a time
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// collectMsgs runs cmd and every command in returned batches,
// returning the leaf messages in order
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collectMsgs(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// splitFetchMsgs separates the worker result from progress ticks
func splitFetchMsgs(t *testing.T, msgs []tea.Msg) (fetchDoneMsg, []progressTickMsg) {
	t.Helper()
	var done *fetchDoneMsg
	var ticks []progressTickMsg
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case fetchDoneMsg:
			done = &msg
		case progressTickMsg:
			ticks = append(ticks, msg)
		}
	}
	if done == nil {
		t.Fatalf("no fetchDoneMsg in %v", msgs)
	}
	return *done, ticks
}

// fetchURL types url into a cleared input, fetches it and applies the result
func fetchURL(t *testing.T, m *Model, url string) {
	t.Helper()
	m.urlInput.SetValue(url)
	done, _ := splitFetchMsgs(t, collectMsgs(pressKey(m, tea.KeyEnter)))
	m.Update(done)
}
