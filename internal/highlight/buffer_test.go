package highlight

import (
	"errors"
	"testing"

	"github.com/studiowebux/resters/internal/jsonlex"
)

func TestBuild_SimpleObject(t *testing.T) {
	text := []byte(`{"a":1}`)
	buf, err := Highlight(text)
	if err != nil {
		t.Fatalf("Highlight() error = %v", err)
	}

	want := Buffer{Struct, String, String, String, Struct, Number, Struct}
	if buf.String() != want.String() {
		t.Errorf("markers = %s, want %s", buf, want)
	}
}

func TestBuild_LengthMatchesText(t *testing.T) {
	texts := []string{
		"",
		"{}",
		"[\n  1,\n  2\n]",
		"{\n  \"name\": \"héllo wörld\",\n  \"ok\": true,\n  \"n\": null,\n  \"f\": -3.25\n}",
		"garbage that is not json",
	}

	for _, text := range texts {
		buf, err := Highlight([]byte(text))
		if err != nil {
			t.Fatalf("Highlight(%q) error = %v", text, err)
		}
		if len(buf) != len(text) {
			t.Errorf("len(buf) = %d, want %d for %q", len(buf), len(text), text)
		}
	}
}

func TestBuild_EmptyText(t *testing.T) {
	buf, err := Build(nil, FromTokens(nil))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if buf == nil || len(buf) != 0 {
		t.Errorf("expected empty non-nil buffer, got %#v", buf)
	}
}

func TestBuild_WhitespaceStaysStruct(t *testing.T) {
	text := []byte("{\n  \"k\": false\n}")
	buf, err := Highlight(text)
	if err != nil {
		t.Fatal(err)
	}
	for i, ch := range text {
		if (ch == ' ' || ch == '\n') && buf[i] != Struct {
			t.Errorf("whitespace at %d has marker %s", i, buf[i])
		}
	}
	if got := buf.Count(Atom); got != len("false") {
		t.Errorf("Atom count = %d, want 5", got)
	}
}

func TestBuild_MarkerMapping(t *testing.T) {
	tests := []struct {
		kind jsonlex.Kind
		want Marker
	}{
		{jsonlex.CurlyOpen, Struct},
		{jsonlex.CurlyClose, Struct},
		{jsonlex.BracketOpen, Struct},
		{jsonlex.BracketClose, Struct},
		{jsonlex.Colon, Struct},
		{jsonlex.Comma, Struct},
		{jsonlex.Invalid, Struct},
		{jsonlex.String, String},
		{jsonlex.BooleanTrue, Atom},
		{jsonlex.BooleanFalse, Atom},
		{jsonlex.Null, Atom},
		{jsonlex.Number, Number},
	}
	for _, tt := range tests {
		if got := MarkerFor(tt.kind); got != tt.want {
			t.Errorf("MarkerFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestBuild_FillsWholeSpan(t *testing.T) {
	text := []byte("xxxxxxxx")
	tokens := []jsonlex.Token{
		{Kind: jsonlex.Number, Span: jsonlex.Span{Start: 1, End: 4}},
		{Kind: jsonlex.String, Span: jsonlex.Span{Start: 5, End: 8}},
	}
	buf, err := Build(text, FromTokens(tokens))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "ADDDABBB" {
		t.Errorf("markers = %s, want ADDDABBB", got)
	}
}

func TestBuild_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		span jsonlex.Span
	}{
		{"end past text", jsonlex.Span{Start: 2, End: 9}},
		{"negative start", jsonlex.Span{Start: -1, End: 2}},
		{"inverted", jsonlex.Span{Start: 3, End: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := []jsonlex.Token{{Kind: jsonlex.String, Span: tt.span}}
			buf, err := Build([]byte("12345"), FromTokens(tokens))
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected RangeError, got %v", err)
			}
			if buf != nil {
				t.Error("no buffer should be returned on error")
			}
			if rangeErr.TextLen != 5 {
				t.Errorf("TextLen = %d", rangeErr.TextLen)
			}
		})
	}
}

func TestBuild_RejectsOverlap(t *testing.T) {
	tokens := []jsonlex.Token{
		{Kind: jsonlex.String, Span: jsonlex.Span{Start: 0, End: 3}},
		{Kind: jsonlex.Number, Span: jsonlex.Span{Start: 2, End: 4}},
	}
	_, err := Build([]byte("abcdef"), FromTokens(tokens))
	var overlapErr *OverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if overlapErr.PrevEnd != 3 {
		t.Errorf("PrevEnd = %d, want 3", overlapErr.PrevEnd)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	text := []byte("{\n  \"x\": [1, true, \"y\"]\n}")
	tokens := jsonlex.New(text).All()

	first, err := Build(text, FromTokens(tokens))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(text, FromTokens(tokens))
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("builds differ: %s vs %s", first, second)
	}
}

func TestRuns(t *testing.T) {
	buf := Buffer{Struct, String, String, String, Struct, Number, Struct}
	want := []Run{
		{Struct, 0, 1},
		{String, 1, 4},
		{Struct, 4, 5},
		{Number, 5, 6},
		{Struct, 6, 7},
	}

	got := Runs(buf)
	if len(got) != len(want) {
		t.Fatalf("got %d runs %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if Runs(nil) != nil {
		t.Error("empty buffer should have no runs")
	}
}

func TestMarkerString(t *testing.T) {
	if Struct.String() != "STRUCT" || Number.String() != "NUMBER" {
		t.Error("unexpected marker names")
	}
	if Marker('Z').String() != `Marker('Z')` {
		t.Errorf("unknown marker = %s", Marker('Z').String())
	}
}
