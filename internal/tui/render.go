package tui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/resters/internal/executor"
	"github.com/studiowebux/resters/internal/inspect"
	"github.com/studiowebux/resters/internal/keybinds"
	"github.com/studiowebux/resters/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleEmphasis = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleMethodGet = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	styleMethodPost = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)
)

// View renders the current screen
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.notice != "" {
		return m.renderNotice()
	}

	if m.mode == ModeHistory {
		return m.renderHistory()
	}

	return m.renderMain()
}

// renderMain renders the input, status line, body and footer
func (m Model) renderMain() string {
	header := m.renderMethod() + " " + m.urlInput.View()

	bodyBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.bodyBorderColor()).
		Width(m.width - 2).
		Render(m.bodyView.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.renderStatusLine(),
		bodyBox,
		m.renderFooter(),
	)
}

func (m Model) renderMethod() string {
	label := fmt.Sprintf("[%-4s]", m.method)
	if m.method == types.MethodPost {
		return styleMethodPost.Render(label)
	}
	return styleMethodGet.Render(label)
}

// statusStyle maps a display class to the status label style
func statusStyle(class inspect.Class) lipgloss.Style {
	switch class {
	case inspect.ClassEmphasis:
		return styleEmphasis
	case inspect.ClassError:
		return styleError
	default:
		return lipgloss.NewStyle()
	}
}

func (m Model) renderStatusLine() string {
	var parts []string

	if m.display.Status != "" {
		parts = append(parts, statusStyle(m.display.Class).Render(m.display.Status))
	}

	if m.coordinator.InFlight() {
		parts = append(parts, m.progressBar.ViewAs(m.coordinator.Progress().Percent()))
	} else if m.display.Status != "" {
		parts = append(parts, styleSubtle.Render(statusMeta(m.display)))
	}

	return strings.Join(parts, "  ")
}

// statusMeta renders duration and size, plus the real code when the label
// does not carry it
func statusMeta(d inspect.Display) string {
	meta := executor.FormatDuration(d.Duration)
	if d.Size > 0 {
		meta += "  " + executor.FormatSize(d.Size)
	}
	if d.Class == inspect.ClassEmphasis && d.Code != 0 && d.Code != http.StatusOK {
		meta = fmt.Sprintf("HTTP %d  ", d.Code) + meta
	}
	return meta
}

func (m Model) bodyBorderColor() lipgloss.AdaptiveColor {
	switch m.display.Class {
	case inspect.ClassEmphasis:
		return colorGreen
	case inspect.ClassError:
		return colorRed
	default:
		return colorGray
	}
}

// renderFooter shows the last message, or key help when there is none
func (m Model) renderFooter() string {
	if m.errorMsg != "" {
		return styleError.Render(m.errorMsg)
	}
	if m.statusMsg != "" {
		return styleSuccess.Render(m.statusMsg)
	}

	return styleSubtle.Render(m.helpLine(keybinds.ContextMain, []keybinds.Action{
		keybinds.ActionFetch,
		keybinds.ActionToggleMethod,
		keybinds.ActionPresetNext,
		keybinds.ActionPageDown,
		keybinds.ActionCopyBody,
		keybinds.ActionToggleHistory,
	}) + "  " + m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionQuit) + " quit")
}

func (m Model) helpLine(context keybinds.Context, actions []keybinds.Action) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		info, _ := keybinds.GetActionInfo(action)
		parts = append(parts, m.keybinds.GetBindingString(context, action)+" "+strings.ToLower(info.Description))
	}
	return strings.Join(parts, "  ")
}

// renderHistory renders the history panel in place of the body
func (m Model) renderHistory() string {
	var lines []string
	lines = append(lines, styleTitle.Render(fmt.Sprintf("History (%d)", len(m.historyEntries))), "")

	if len(m.historyEntries) == 0 {
		lines = append(lines, styleSubtle.Render("No fetches recorded yet"))
	}

	// Keep the selection visible
	visible := m.height - MainViewHeightOffset
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.historyIndex >= visible {
		start = m.historyIndex - visible + 1
	}
	end := start + visible
	if end > len(m.historyEntries) {
		end = len(m.historyEntries)
	}

	for i := start; i < end; i++ {
		line := formatHistoryEntry(m.historyEntries[i])
		if m.width > 7 {
			line = truncate(line, m.width-4)
		}
		if i == m.historyIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Render(strings.Join(lines, "\n"))

	footer := styleSubtle.Render(m.helpLine(keybinds.ContextHistory, []keybinds.Action{
		keybinds.ActionHistoryExecute,
		keybinds.ActionHistoryDelete,
		keybinds.ActionHistoryClear,
		keybinds.ActionHistoryClose,
	}))
	if m.errorMsg != "" {
		footer = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		footer = styleSuccess.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, panel, footer)
}

// formatHistoryEntry renders one history row
func formatHistoryEntry(e types.HistoryEntry) string {
	result := e.Error
	if e.Kind != types.KindTransportError {
		result = types.StatusLine(e.Status, e.Reason)
	}
	return fmt.Sprintf("%s  %-4s  %-24s  %s",
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.Method,
		truncate(result, 24),
		e.URL,
	)
}

// renderNotice renders the blocking notice centered on screen
func (m Model) renderNotice() string {
	width := m.width - NoticeMargin
	if width > NoticeMaxWidth {
		width = NoticeMaxWidth
	}
	if width < 10 {
		width = 10
	}

	dismiss := m.keybinds.GetBindingString(keybinds.ContextNotice, keybinds.ActionDismissNotice)
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styleError.Render("Notice"),
		"",
		lipgloss.NewStyle().Width(width-4).Render(m.notice),
		"",
		styleSubtle.Render(dismiss+" to dismiss"),
	)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 1).
		Width(width).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

// updateViewport resizes the widgets to the terminal
func (m *Model) updateViewport() {
	bodyWidth := m.width - ViewportBorderWidth
	if bodyWidth < 1 {
		bodyWidth = 1
	}
	bodyHeight := m.height - MainViewHeightOffset
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	m.bodyView.Width = bodyWidth
	m.bodyView.Height = bodyHeight

	inputWidth := m.width - MethodBadgeWidth
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.urlInput.Width = inputWidth
}
