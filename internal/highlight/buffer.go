package highlight

import (
	"fmt"

	"github.com/studiowebux/resters/internal/jsonlex"
)

// Marker is the per-byte style class of the source text
type Marker byte

const (
	Struct Marker = 'A' // punctuation, whitespace, malformed tokens
	String Marker = 'B'
	Atom   Marker = 'C' // true, false, null
	Number Marker = 'D'
)

func (m Marker) String() string {
	switch m {
	case Struct:
		return "STRUCT"
	case String:
		return "STRING"
	case Atom:
		return "ATOM"
	case Number:
		return "NUMBER"
	}
	return fmt.Sprintf("Marker(%q)", byte(m))
}

// Buffer holds one marker per byte of the source text
type Buffer []Marker

// String returns the raw marker bytes
func (b Buffer) String() string {
	raw := make([]byte, len(b))
	for i, m := range b {
		raw[i] = byte(m)
	}
	return string(raw)
}

// Count returns how many positions carry marker m
func (b Buffer) Count(m Marker) int {
	n := 0
	for _, got := range b {
		if got == m {
			n++
		}
	}
	return n
}

// TokenSource yields tokens in stream order
type TokenSource interface {
	Next() (jsonlex.Token, bool)
}

// RangeError reports a token span that does not fit inside the text
type RangeError struct {
	Span    jsonlex.Span
	TextLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("token span [%d, %d) outside text of length %d", e.Span.Start, e.Span.End, e.TextLen)
}

// OverlapError reports a token span that starts before the previous one ended
type OverlapError struct {
	Span    jsonlex.Span
	PrevEnd int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("token span [%d, %d) overlaps previous span ending at %d", e.Span.Start, e.Span.End, e.PrevEnd)
}

// MarkerFor maps a token kind to its style class
func MarkerFor(kind jsonlex.Kind) Marker {
	switch kind {
	case jsonlex.String:
		return String
	case jsonlex.BooleanTrue, jsonlex.BooleanFalse, jsonlex.Null:
		return Atom
	case jsonlex.Number:
		return Number
	default:
		return Struct
	}
}

// Build overlays the token stream onto text. The result always has len(text)
// markers; bytes outside every span stay Struct. Spans must be in range and
// strictly ordered, otherwise no buffer is returned.
func Build(text []byte, tokens TokenSource) (Buffer, error) {
	buf := make(Buffer, len(text))
	for i := range buf {
		buf[i] = Struct
	}

	prevEnd := 0
	for {
		tok, ok := tokens.Next()
		if !ok {
			break
		}

		span := tok.Span
		if span.Start < 0 || span.End > len(text) || span.Start > span.End {
			return nil, &RangeError{Span: span, TextLen: len(text)}
		}
		if span.Start < prevEnd {
			return nil, &OverlapError{Span: span, PrevEnd: prevEnd}
		}
		prevEnd = span.End

		marker := MarkerFor(tok.Kind)
		for i := span.Start; i < span.End; i++ {
			buf[i] = marker
		}
	}

	return buf, nil
}

// Highlight lexes text as JSON and builds its style buffer
func Highlight(text []byte) (Buffer, error) {
	return Build(text, jsonlex.New(text))
}

// Run is a maximal stretch of identical markers
type Run struct {
	Marker Marker
	Start  int
	End    int
}

// Runs groups adjacent identical markers for painting
func Runs(buf Buffer) []Run {
	if len(buf) == 0 {
		return nil
	}

	var runs []Run
	current := Run{Marker: buf[0], Start: 0}
	for i := 1; i < len(buf); i++ {
		if buf[i] != current.Marker {
			current.End = i
			runs = append(runs, current)
			current = Run{Marker: buf[i], Start: i}
		}
	}
	current.End = len(buf)
	return append(runs, current)
}

// SliceSource replays a fixed list of tokens
type SliceSource struct {
	tokens []jsonlex.Token
	pos    int
}

// FromTokens wraps tokens as a TokenSource
func FromTokens(tokens []jsonlex.Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// Next implements TokenSource
func (s *SliceSource) Next() (jsonlex.Token, bool) {
	if s.pos >= len(s.tokens) {
		return jsonlex.Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}
