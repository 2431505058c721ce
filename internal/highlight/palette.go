package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Solarized fallbacks for themes that leave a token class uncolored
var fallbackColors = map[Marker]string{
	Struct: "#dc322f",
	String: "#268bd2",
	Atom:   "#859900",
	Number: "#b58900",
}

// chroma token type each marker borrows its colour from
var markerTokenTypes = map[Marker]chroma.TokenType{
	Struct: chroma.Punctuation,
	String: chroma.LiteralString,
	Atom:   chroma.KeywordConstant,
	Number: chroma.LiteralNumber,
}

// Palette maps markers to terminal styles
type Palette struct {
	Theme  string
	colors map[Marker]string
	styles map[Marker]lipgloss.Style
}

// NewPalette derives marker colours from a chroma style (unknown names use chroma's fallback style)
func NewPalette(theme string) Palette {
	style := styles.Get(theme)

	p := Palette{
		Theme:  style.Name,
		colors: make(map[Marker]string, len(markerTokenTypes)),
		styles: make(map[Marker]lipgloss.Style, len(markerTokenTypes)),
	}

	for marker, tokenType := range markerTokenTypes {
		hex := fallbackColors[marker]
		if entry := style.Get(tokenType); entry.Colour.IsSet() {
			hex = entry.Colour.String()
		}
		p.colors[marker] = hex
		p.styles[marker] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).TabWidth(lipgloss.NoTabConversion)
	}

	return p
}

// Color returns the hex colour used for a marker
func (p Palette) Color(m Marker) string {
	if hex, ok := p.colors[m]; ok {
		return hex
	}
	return fallbackColors[Struct]
}

// Style returns the lipgloss style for a marker
func (p Palette) Style(m Marker) lipgloss.Style {
	if s, ok := p.styles[m]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render paints text according to buf. Runs are split at newlines so
// lipgloss never pads a multi-line block. A buffer whose length does not
// match the text is ignored and the text is returned unstyled.
func Render(text string, buf Buffer, p Palette) string {
	if len(buf) != len(text) {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	for _, run := range Runs(buf) {
		style := p.Style(run.Marker)
		for i, line := range strings.Split(text[run.Start:run.End], "\n") {
			if i > 0 {
				out.WriteByte('\n')
			}
			if line == "" {
				continue
			}
			if strings.TrimSpace(line) == "" {
				out.WriteString(line)
				continue
			}
			out.WriteString(style.Render(line))
		}
	}

	return out.String()
}
