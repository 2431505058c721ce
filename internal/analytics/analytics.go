// Package analytics aggregates fetch history into per-endpoint statistics.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/migrations"
	"github.com/studiowebux/resters/internal/types"
)

// DefaultCacheTTL bounds how long computed stats are reused
const DefaultCacheTTL = 5 * time.Second

// Stats summarizes every recorded fetch of one method and URL
type Stats struct {
	Method          types.Method `json:"method" yaml:"method"`
	URL             string       `json:"url" yaml:"url"`
	TotalCalls      int          `json:"totalCalls" yaml:"totalCalls"`
	SuccessCount    int          `json:"successCount" yaml:"successCount"`
	HTTPErrorCount  int          `json:"httpErrorCount" yaml:"httpErrorCount"`
	TransportErrors int          `json:"transportErrors" yaml:"transportErrors"` // No status line (DNS, refused, timeout)
	AvgDurationMs   float64      `json:"avgDurationMs" yaml:"avgDurationMs"`
	MinDurationMs   int64        `json:"minDurationMs" yaml:"minDurationMs"`
	MaxDurationMs   int64        `json:"maxDurationMs" yaml:"maxDurationMs"`
	TotalRespSize   int64        `json:"totalResponseSize" yaml:"totalResponseSize"`
	StatusCodes     map[int]int  `json:"statusCodes" yaml:"statusCodes"`
	LastCalled      time.Time    `json:"lastCalled" yaml:"lastCalled"`
}

// SuccessRate is the share of calls that returned 2xx, from 0 to 100
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) * 100 / float64(s.TotalCalls)
}

// Manager reads the history table for aggregates
type Manager struct {
	db    *sql.DB
	cache *statsCache
}

// NewManager opens the history database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, cache: newStatsCache(DefaultCacheTTL)}, nil
}

// PerEndpoint returns one Stats per method and URL, most recently called first
func (m *Manager) PerEndpoint() ([]Stats, error) {
	if stats, ok := m.cache.get(); ok {
		return stats, nil
	}

	// Status codes are aggregated in the same query as a JSON object
	query := `
		WITH status_codes_agg AS (
			SELECT
				method,
				url,
				json_group_object(CAST(status AS TEXT), count) AS status_codes_json
			FROM (
				SELECT method, url, status, COUNT(*) AS count
				FROM history
				WHERE kind != ?
				GROUP BY method, url, status
			)
			GROUP BY method, url
		)
		SELECT
			h.method,
			h.url,
			COUNT(*) AS total_calls,
			SUM(CASE WHEN h.kind = ? THEN 1 ELSE 0 END) AS success_count,
			SUM(CASE WHEN h.kind = ? THEN 1 ELSE 0 END) AS http_error_count,
			SUM(CASE WHEN h.kind = ? THEN 1 ELSE 0 END) AS transport_errors,
			COALESCE(AVG(CASE WHEN h.kind != ? THEN h.duration_ms END), 0) AS avg_duration,
			COALESCE(MIN(CASE WHEN h.kind != ? THEN h.duration_ms END), 0) AS min_duration,
			COALESCE(MAX(CASE WHEN h.kind != ? THEN h.duration_ms END), 0) AS max_duration,
			SUM(h.response_size) AS total_resp_size,
			MAX(h.timestamp) AS last_called,
			COALESCE(s.status_codes_json, '{}') AS status_codes_json
		FROM history h
		LEFT JOIN status_codes_agg s ON h.method = s.method AND h.url = s.url
		GROUP BY h.method, h.url
		ORDER BY last_called DESC
	`

	transport := string(types.KindTransportError)
	rows, err := m.db.Query(query,
		transport,
		string(types.KindSuccess),
		string(types.KindHTTPError),
		transport,
		transport, transport, transport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats per endpoint: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var (
			s               Stats
			method          string
			lastCalled      string
			statusCodesJSON string
		)

		err := rows.Scan(
			&method,
			&s.URL,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.HTTPErrorCount,
			&s.TransportErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&s.TotalRespSize,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		s.Method = types.Method(method)

		parsed, err := time.Parse(history.TimestampLayout, lastCalled)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q for %s: %w", lastCalled, s.URL, err)
		}
		s.LastCalled = parsed.Local()

		s.StatusCodes, err = parseStatusCodes(statusCodesJSON)
		if err != nil {
			return nil, err
		}

		statsList = append(statsList, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m.cache.set(statsList)
	return statsList, nil
}

// Invalidate drops cached stats so the next read hits the database
func (m *Manager) Invalidate() {
	m.cache.invalidate()
}

func parseStatusCodes(raw string) (map[int]int, error) {
	codes := make(map[int]int)
	if raw == "{}" {
		return codes, nil
	}

	var byText map[string]int
	if err := json.Unmarshal([]byte(raw), &byText); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
	}
	for text, count := range byText {
		code, err := strconv.Atoi(text)
		if err != nil {
			continue
		}
		codes[code] = count
	}
	return codes, nil
}

// Close closes the database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
