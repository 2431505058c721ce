package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/resters/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// A notice blocks everything except its own keys
	if m.notice != "" {
		if action, ok := m.keybinds.Match(keybinds.ContextNotice, key); ok && action == keybinds.ActionDismissNotice {
			m.notice = ""
		}
		return nil
	}

	switch m.mode {
	case ModeHistory:
		return m.handleHistoryKeys(key)
	default:
		return m.handleMainKeys(msg)
	}
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextMain, msg.String())
	if !ok {
		// Everything else edits the URL
		before := m.urlInput.Value()
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		if m.urlInput.Value() != before {
			m.presetMatches = nil
		}
		return cmd
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionFetch:
		return m.startFetch()
	case keybinds.ActionToggleMethod:
		m.toggleMethod()
	case keybinds.ActionPresetNext:
		m.cyclePreset(1)
	case keybinds.ActionPresetPrev:
		m.cyclePreset(-1)
	case keybinds.ActionPageUp:
		m.bodyView.PageUp()
	case keybinds.ActionPageDown:
		m.bodyView.PageDown()
	case keybinds.ActionCopyBody:
		return m.copyBody()
	case keybinds.ActionToggleHistory:
		m.openHistory()
	}
	return nil
}

func (m *Model) handleHistoryKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHistory, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionHistoryUp:
		if m.historyIndex > 0 {
			m.historyIndex--
		}
	case keybinds.ActionHistoryDown:
		if m.historyIndex < len(m.historyEntries)-1 {
			m.historyIndex++
		}
	case keybinds.ActionHistoryExecute:
		return m.refetchHistoryEntry()
	case keybinds.ActionHistoryDelete:
		m.deleteHistoryEntry()
	case keybinds.ActionHistoryClear:
		m.clearHistory()
	case keybinds.ActionHistoryClose:
		m.closeHistory()
	}
	return nil
}
