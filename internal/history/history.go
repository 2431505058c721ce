// Package history stores fetch outcomes in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/migrations"
	"github.com/studiowebux/resters/internal/types"
)

// TimestampLayout is the fixed-width UTC text form stored in the history table.
// Fixed-width values sort chronologically as text.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Manager owns the history database connection
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the database at dbPath and migrates it
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save inserts entry and returns its row id
func (m *Manager) Save(entry types.HistoryEntry) (int64, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query := `
		INSERT INTO history (
			timestamp, method, url, kind, status, reason, error, duration_ms, response_size
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := m.db.Exec(query,
		entry.Timestamp.UTC().Format(TimestampLayout),
		string(entry.Method),
		entry.URL,
		string(entry.Kind),
		entry.Status,
		entry.Reason,
		entry.Error,
		entry.DurationMs,
		entry.ResponseSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read history entry id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (m *Manager) Recent(limit int) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, method, url, kind, status, reason, error, duration_ms, response_size
		FROM history
		ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry

	for rows.Next() {
		var (
			entry     types.HistoryEntry
			timestamp string
			method    string
			kind      string
		)

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&method,
			&entry.URL,
			&kind,
			&entry.Status,
			&entry.Reason,
			&entry.Error,
			&entry.DurationMs,
			&entry.ResponseSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		parsedTime, err := time.Parse(TimestampLayout, timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q in history entry %d: %w", timestamp, entry.ID, err)
		}
		entry.Timestamp = parsedTime.Local()
		entry.Method = types.Method(method)
		entry.Kind = types.OutcomeKind(kind)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes every entry
func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Delete removes one entry by id
func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

// Prune keeps the newest keep entries and deletes the rest
func (m *Manager) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := m.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// GetCount returns the number of stored entries
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

// Close closes the database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
