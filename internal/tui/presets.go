package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// refreshPresets rebuilds the suggestion list: recent URLs first, then
// configured presets, without duplicates
func (m *Model) refreshPresets() {
	var candidates []string
	if m.sessionMgr != nil {
		candidates = append(candidates, m.sessionMgr.GetRecentURLs()...)
	}
	candidates = append(candidates, m.cfg.Fetch.Presets...)

	seen := make(map[string]bool, len(candidates))
	m.presets = m.presets[:0]
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		m.presets = append(m.presets, c)
	}
	m.presetMatches = nil
}

// rankPresets orders candidates by fuzzy match against query.
// An empty query keeps the original order.
func rankPresets(query string, candidates []string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}

	lower := make([]string, len(candidates))
	for i, c := range candidates {
		lower[i] = strings.ToLower(c)
	}

	matches := fuzzy.Find(strings.ToLower(query), lower)
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = candidates[match.Index]
	}
	return out
}

// cyclePreset moves through suggestions ranked against what the user typed
// before cycling started
func (m *Model) cyclePreset(step int) {
	if m.presetMatches == nil {
		m.presetMatches = rankPresets(m.urlInput.Value(), m.presets)
		m.presetIndex = -1
		if step < 0 {
			m.presetIndex = 0
		}
	}
	if len(m.presetMatches) == 0 {
		m.setError("No matching suggestions")
		return
	}

	n := len(m.presetMatches)
	m.presetIndex = ((m.presetIndex+step)%n + n) % n
	m.urlInput.SetValue(m.presetMatches[m.presetIndex])
	m.urlInput.CursorEnd()
}
