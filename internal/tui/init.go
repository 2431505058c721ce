package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/executor"
	"github.com/studiowebux/resters/internal/fetch"
	"github.com/studiowebux/resters/internal/highlight"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/inspect"
	"github.com/studiowebux/resters/internal/keybinds"
	"github.com/studiowebux/resters/internal/session"
	"github.com/studiowebux/resters/internal/types"
)

// Options wires the model to its collaborators.
// Only Config is required.
type Options struct {
	Config   *config.Config
	Logger   zerolog.Logger
	History  *history.Manager   // nil disables history
	Session  *session.Manager   // nil disables session persistence
	Keybinds *keybinds.Registry // nil uses the defaults
	Doer     fetch.Doer         // nil performs real HTTP requests
}

// New creates a new TUI model
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		return Model{}, fmt.Errorf("tui: config is required")
	}

	method, err := types.ParseMethod(cfg.Fetch.Method)
	if err != nil {
		return Model{}, fmt.Errorf("fetch.method: %w", err)
	}

	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	doer := opts.Doer
	if doer == nil {
		doer = executor.NewClient(cfg.Fetch.Scheme).Execute
	}

	input := textinput.New()
	input.Placeholder = "example.com/api"
	input.Prompt = ""
	input.Focus()

	m := Model{
		cfg:            cfg,
		log:            opts.Logger,
		doer:           doer,
		coordinator:    fetch.NewCoordinator(fetch.NewCounter(cfg.UI.ProgressMin, cfg.UI.ProgressMax)),
		classifier:     inspect.Classifier{Query: cfg.Fetch.Query, Log: opts.Logger},
		keybinds:       registry,
		palette:        highlight.NewPalette(cfg.UI.Theme),
		historyManager: opts.History,
		sessionMgr:     opts.Session,
		mode:           ModeMain,
		method:         method,
		urlInput:       input,
		bodyView:       viewport.New(80, 20),
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(ProgressBarWidth),
			progress.WithoutPercentage(),
		),
	}

	// Restore the last request
	if m.sessionMgr != nil {
		s := m.sessionMgr.GetSession()
		if s.Method != "" {
			m.method = s.Method
		}
		if s.URL != "" {
			m.urlInput.SetValue(s.URL)
			m.urlInput.CursorEnd()
		}
	}
	m.refreshPresets()

	return m, nil
}

// Run starts the TUI
func Run(cfg *config.Config, log zerolog.Logger) error {
	registry, err := keybinds.Load(cfg.Keybinds)
	if err != nil {
		return err
	}

	mgr := session.NewManager(config.SessionFile)
	if err := mgr.Load(); err != nil {
		return err
	}

	var historyMgr *history.Manager
	if cfg.History.Enabled {
		historyMgr, err = history.NewManager(config.DatabasePath)
		if err != nil {
			// History is optional; keep going without it
			log.Error().Err(err).Msg("history disabled")
			historyMgr = nil
		}
	}

	m, err := New(Options{
		Config:   cfg,
		Logger:   log,
		History:  historyMgr,
		Session:  mgr,
		Keybinds: registry,
	})
	if err != nil {
		if historyMgr != nil {
			historyMgr.Close()
		}
		return err
	}
	defer m.Cleanup()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
