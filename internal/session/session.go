// Package session persists the last request between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/types"
)

// MaxRecentURLs bounds the MRU list
const MaxRecentURLs = 10

// Manager loads and saves the session file
type Manager struct {
	path    string
	session *types.Session
}

// NewManager creates a session manager for the file at path.
// An empty path uses config.SessionFile.
func NewManager(path string) *Manager {
	if path == "" {
		path = config.SessionFile
	}
	return &Manager{
		path:    path,
		session: &types.Session{},
	}
}

// Load reads the session file. A missing file leaves the empty session.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.session = &types.Session{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.Method != "" {
		if _, err := types.ParseMethod(string(session.Method)); err != nil {
			session.Method = ""
		}
	}

	m.session = &session
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// GetSession returns the current session
func (m *Manager) GetSession() *types.Session {
	return m.session
}

// Record stores req as the last request, moves its URL to the front
// of the MRU list and saves
func (m *Manager) Record(req types.FetchRequest) error {
	m.session.Method = req.Method
	m.session.URL = req.URL
	m.addRecentURL(req.URL)
	return m.Save()
}

func (m *Manager) addRecentURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}

	recent := []string{url}
	for _, u := range m.session.RecentURLs {
		if u != url {
			recent = append(recent, u)
		}
	}

	if len(recent) > MaxRecentURLs {
		recent = recent[:MaxRecentURLs]
	}
	m.session.RecentURLs = recent
}

// GetRecentURLs returns the MRU list, most recent first
func (m *Manager) GetRecentURLs() []string {
	if m.session.RecentURLs == nil {
		return []string{}
	}
	return m.session.RecentURLs
}
