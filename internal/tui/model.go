package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/fetch"
	"github.com/studiowebux/resters/internal/highlight"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/inspect"
	"github.com/studiowebux/resters/internal/keybinds"
	"github.com/studiowebux/resters/internal/session"
	"github.com/studiowebux/resters/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeMain Mode = iota
	ModeHistory
)

// fetchDoneMsg carries a worker outcome back to the loop
type fetchDoneMsg struct {
	gen     uint64
	request types.FetchRequest
	outcome types.Outcome
}

// progressTickMsg fires every poll interval while a fetch is in flight
type progressTickMsg struct {
	gen uint64
}

// clipboardMsg reports the result of a copy
type clipboardMsg struct {
	err error
}

// Model represents the TUI state
type Model struct {
	cfg            *config.Config
	log            zerolog.Logger
	doer           fetch.Doer
	coordinator    *fetch.Coordinator
	classifier     inspect.Classifier
	keybinds       *keybinds.Registry
	palette        highlight.Palette
	historyManager *history.Manager
	sessionMgr     *session.Manager

	mode   Mode
	width  int
	height int

	// Request
	method   types.Method
	urlInput textinput.Model

	// URL suggestions
	presets       []string
	presetMatches []string // nil until the user starts cycling
	presetIndex   int

	// Response
	display     inspect.Display
	bodyView    viewport.Model
	progressBar progress.Model
	notice      string // Blocking notice; empty when none is shown

	// History panel
	historyEntries []types.HistoryEntry
	historyIndex   int

	// Footer
	statusMsg string
	errorMsg  string
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Cleanup closes the history database
func (m *Model) Cleanup() {
	if m.historyManager != nil {
		if err := m.historyManager.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing history database: %v\n", err)
		}
		m.historyManager = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case progressTickMsg:
		if m.coordinator.Tick(msg.gen) {
			cmd = m.tickCmd(msg.gen)
		}

	case fetchDoneMsg:
		m.handleFetchDone(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to copy to clipboard: %v", msg.err))
		} else {
			m.setStatus("Body copied to clipboard")
		}

	default:
		// Forward cursor blink and other widget messages
		m.urlInput, cmd = m.urlInput.Update(msg)
	}

	return m, cmd
}

// Display returns the state derived from the last accepted outcome
func (m *Model) Display() inspect.Display {
	return m.display
}

// Notice returns the blocking notice currently shown, if any
func (m *Model) Notice() string {
	return m.notice
}
