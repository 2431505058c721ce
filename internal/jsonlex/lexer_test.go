package jsonlex

import (
	"testing"
)

func TestLexer_SimpleObject(t *testing.T) {
	input := `{"a":1}`
	want := []Token{
		{CurlyOpen, Span{0, 1}},
		{String, Span{1, 4}},
		{Colon, Span{4, 5}},
		{Number, Span{5, 6}},
		{CurlyClose, Span{6, 7}},
	}

	got := New([]byte(input)).All()
	assertTokens(t, got, want)
}

func TestLexer_PrettyPrinted(t *testing.T) {
	input := "{\n  \"ok\": true,\n  \"list\": [null, false, -1.5e3]\n}"
	got := New([]byte(input)).All()

	wantKinds := []Kind{
		CurlyOpen, String, Colon, BooleanTrue, Comma,
		String, Colon, BracketOpen, Null, Comma, BooleanFalse, Comma, Number, BracketClose,
		CurlyClose,
	}
	if len(got) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(wantKinds), got)
	}
	for i, tok := range got {
		if tok.Kind != wantKinds[i] {
			t.Errorf("token %d kind = %s, want %s", i, tok.Kind, wantKinds[i])
		}
	}

	// Quotes are part of the string span
	if text := input[got[1].Span.Start:got[1].Span.End]; text != `"ok"` {
		t.Errorf("string span text = %q, want %q", text, `"ok"`)
	}
	if text := input[got[12].Span.Start:got[12].Span.End]; text != "-1.5e3" {
		t.Errorf("number span text = %q", text)
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "escaped quote",
			input: `"a\"b"`,
			want:  []Token{{String, Span{0, 6}}},
		},
		{
			name:  "escaped backslash before closing quote",
			input: `"a\\"`,
			want:  []Token{{String, Span{0, 5}}},
		},
		{
			name:  "unterminated",
			input: `"abc`,
			want:  []Token{{Invalid, Span{0, 4}}},
		},
		{
			name:  "trailing backslash",
			input: `"abc\`,
			want:  []Token{{Invalid, Span{0, 5}}},
		},
		{
			name:  "multibyte content",
			input: `"héllo"`,
			want:  []Token{{String, Span{0, 8}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, New([]byte(tt.input)).All(), tt.want)
		})
	}
}

func TestLexer_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "misspelled keyword",
			input: `[tru]`,
			want:  []Token{{BracketOpen, Span{0, 1}}, {Invalid, Span{1, 4}}, {BracketClose, Span{4, 5}}},
		},
		{
			name:  "keyword prefix",
			input: `nullx`,
			want:  []Token{{Invalid, Span{0, 5}}},
		},
		{
			name:  "bare word",
			input: `@foo,1`,
			want:  []Token{{Invalid, Span{0, 4}}, {Comma, Span{4, 5}}, {Number, Span{5, 6}}},
		},
		{
			name:  "number followed by letters",
			input: `12ab`,
			want:  []Token{{Invalid, Span{0, 4}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, New([]byte(tt.input)).All(), tt.want)
		})
	}
}

func TestLexer_EmptyAndWhitespace(t *testing.T) {
	if got := New(nil).All(); len(got) != 0 {
		t.Errorf("empty input produced tokens: %v", got)
	}
	if got := New([]byte(" \n\t\r ")).All(); len(got) != 0 {
		t.Errorf("whitespace input produced tokens: %v", got)
	}
}

func TestLexer_SpansOrdered(t *testing.T) {
	input := []byte(`{"users":[{"id":1,"name":"x","admin":false},{"id":2,"tags":[]}],"next":null}`)
	prev := 0
	for _, tok := range New(input).All() {
		if tok.Span.Start < prev {
			t.Fatalf("span %v starts before previous end %d", tok.Span, prev)
		}
		if tok.Span.End <= tok.Span.Start || tok.Span.End > len(input) {
			t.Fatalf("span %v out of range", tok.Span)
		}
		prev = tok.Span.End
	}
}

func TestKindString(t *testing.T) {
	if CurlyOpen.String() != "CurlyOpen" || Invalid.String() != "Invalid" {
		t.Error("unexpected kind names")
	}
	if Kind(99).String() != "Kind(?)" {
		t.Errorf("out of range kind = %q", Kind(99).String())
	}
}

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
