package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/resters/internal/fetch"
	"github.com/studiowebux/resters/internal/highlight"
	"github.com/studiowebux/resters/internal/inspect"
	"github.com/studiowebux/resters/internal/types"
)

// startFetch clears the previous result and launches a worker for the
// current method and URL
func (m *Model) startFetch() tea.Cmd {
	url := strings.TrimSpace(m.urlInput.Value())
	if url == "" {
		m.setError("Enter a URL to fetch")
		return nil
	}

	m.applyDisplay(inspect.Display{})
	m.errorMsg = ""
	m.statusMsg = ""
	m.presetMatches = nil

	ticket := m.coordinator.Begin(types.FetchRequest{Method: m.method, URL: url})
	m.log.Info().
		Str("method", string(ticket.Request.Method)).
		Str("url", ticket.Request.URL).
		Uint64("gen", ticket.Gen).
		Msg("fetch started")

	return tea.Batch(m.fetchCmd(ticket), m.tickCmd(ticket.Gen))
}

// fetchCmd runs the blocking request on the command goroutine.
// It captures only the doer and ticket, never model state.
func (m *Model) fetchCmd(ticket fetch.Ticket) tea.Cmd {
	do := m.doer
	return func() tea.Msg {
		return fetchDoneMsg{
			gen:     ticket.Gen,
			request: ticket.Request,
			outcome: fetch.Perform(do, ticket.Request),
		}
	}
}

// tickCmd schedules the next progress tick
func (m *Model) tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.cfg.Fetch.PollInterval, func(time.Time) tea.Msg {
		return progressTickMsg{gen: gen}
	})
}

// handleFetchDone applies a worker outcome if it belongs to the current fetch
func (m *Model) handleFetchDone(msg fetchDoneMsg) {
	outcome, ok := m.coordinator.Finish(msg.gen, msg.outcome)
	if !ok {
		m.log.Debug().Uint64("gen", msg.gen).Msg("stale fetch result dropped")
		return
	}

	event := m.log.Info().
		Uint64("gen", msg.gen).
		Str("kind", string(outcome.Kind()))
	switch o := outcome.(type) {
	case types.Success:
		event = event.Int("status", o.Status).Dur("duration", o.Duration).Int("size", len(o.Body))
	case types.HTTPError:
		event = event.Int("status", o.Code).Dur("duration", o.Duration)
	case types.TransportError:
		event = event.Str("error", o.Message)
	}
	event.Msg("fetch finished")

	m.applyDisplay(m.classifier.Classify(outcome))
	m.saveHistory(msg.request, outcome)
	m.recordSession(msg.request)
}

// applyDisplay replaces the status, body and notice with d
func (m *Model) applyDisplay(d inspect.Display) {
	m.display = d
	m.notice = d.Notice

	content := d.Body
	if len(d.Styles) > 0 {
		content = highlight.Render(d.Body, d.Styles, m.palette)
	}
	m.bodyView.SetContent(content)
	m.bodyView.GotoTop()
}

func (m *Model) saveHistory(req types.FetchRequest, outcome types.Outcome) {
	if m.historyManager == nil || !m.cfg.History.Enabled {
		return
	}

	entry := types.NewHistoryEntry(req, outcome, time.Now())
	if _, err := m.historyManager.Save(entry); err != nil {
		m.log.Error().Err(err).Msg("failed to save history")
		m.setError(fmt.Sprintf("Failed to save history: %v", err))
		return
	}
	if err := m.historyManager.Prune(m.cfg.History.Limit); err != nil {
		m.log.Error().Err(err).Msg("failed to prune history")
	}
}

func (m *Model) recordSession(req types.FetchRequest) {
	if m.sessionMgr == nil {
		return
	}
	if err := m.sessionMgr.Record(req); err != nil {
		m.log.Error().Err(err).Msg("failed to save session")
		m.setError(fmt.Sprintf("Failed to save session: %v", err))
		return
	}
	m.refreshPresets()
}

// toggleMethod switches between GET and POST
func (m *Model) toggleMethod() {
	m.method = m.method.Next()
}

// copyBody copies the plain body text to the system clipboard
func (m *Model) copyBody() tea.Cmd {
	body := m.display.Body
	if body == "" {
		m.setError("No body to copy")
		return nil
	}
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(body)}
	}
}

// openHistory loads recent entries and shows the history panel
func (m *Model) openHistory() {
	if m.historyManager == nil {
		m.setError("History is disabled")
		return
	}
	entries, err := m.historyManager.Recent(m.cfg.History.Limit)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load history")
		m.setError(fmt.Sprintf("Failed to load history: %v", err))
		return
	}
	m.historyEntries = entries
	m.historyIndex = 0
	m.mode = ModeHistory
}

func (m *Model) closeHistory() {
	m.mode = ModeMain
	m.historyEntries = nil
}

// clearHistory removes every stored entry
func (m *Model) clearHistory() {
	if m.historyManager == nil {
		return
	}
	if err := m.historyManager.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear history")
		m.setError(fmt.Sprintf("Failed to clear history: %v", err))
		return
	}
	m.historyEntries = nil
	m.historyIndex = 0
	m.setStatus("History cleared")
}

// deleteHistoryEntry removes the selected entry and keeps the cursor in range
func (m *Model) deleteHistoryEntry() {
	if m.historyManager == nil || m.historyIndex < 0 || m.historyIndex >= len(m.historyEntries) {
		return
	}
	entry := m.historyEntries[m.historyIndex]
	if err := m.historyManager.Delete(entry.ID); err != nil {
		m.log.Error().Err(err).Int64("id", entry.ID).Msg("failed to delete history entry")
		m.setError(fmt.Sprintf("Failed to delete history entry: %v", err))
		return
	}

	m.historyEntries = append(m.historyEntries[:m.historyIndex], m.historyEntries[m.historyIndex+1:]...)
	if m.historyIndex >= len(m.historyEntries) && m.historyIndex > 0 {
		m.historyIndex--
	}
	m.setStatus("History entry deleted")
}

// refetchHistoryEntry loads the selected entry into the input and fetches it
func (m *Model) refetchHistoryEntry() tea.Cmd {
	if m.historyIndex < 0 || m.historyIndex >= len(m.historyEntries) {
		return nil
	}
	entry := m.historyEntries[m.historyIndex]
	m.method = entry.Method
	m.urlInput.SetValue(entry.URL)
	m.urlInput.CursorEnd()
	m.closeHistory()
	return m.startFetch()
}

func (m *Model) setStatus(msg string) {
	m.errorMsg = ""
	m.statusMsg = truncate(msg, FooterMessageMax)
}

func (m *Model) setError(msg string) {
	m.statusMsg = ""
	m.errorMsg = truncate(msg, FooterMessageMax)
}

// truncate shortens s to n terminal cells, ending in "..." when cut
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
