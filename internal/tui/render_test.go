package tui

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/resters/internal/inspect"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "abcdef", 6, "abcdef"},
		{"ascii cut", "connection refused", 10, "connect..."},
		{"multibyte cut", "lookup héllo.example: no such host", 12, "lookup hé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			AssertModelField(t, "truncate", got, tt.want)
			if !utf8.ValidString(got) {
				t.Errorf("truncate produced invalid UTF-8: %q", got)
			}
			if w := lipgloss.Width(got); w > tt.n {
				t.Errorf("width = %d, want <= %d", w, tt.n)
			}
		})
	}
}

func TestStatusMeta(t *testing.T) {
	ok := inspect.Display{Status: inspect.StatusOK, Code: 200, Class: inspect.ClassEmphasis, Duration: 12 * time.Millisecond, Size: 10}
	AssertModelField(t, "meta for 200", statusMeta(ok), "12ms  10B")

	created := ok
	created.Code = 201
	AssertModelField(t, "meta for 201", statusMeta(created), "HTTP 201  12ms  10B")

	notFound := inspect.Display{Status: "404 Not Found", Code: 404, Class: inspect.ClassError, Duration: 3 * time.Millisecond}
	AssertModelField(t, "meta for 404", statusMeta(notFound), "3ms")
}
