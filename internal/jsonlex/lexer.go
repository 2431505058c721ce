package jsonlex

// Lexer tokenizes JSON text into (kind, span) pairs.
// Whitespace between tokens is skipped and never reported.
// The lexer is lenient: anything it cannot classify becomes an Invalid token.
type Lexer struct {
	input []byte
	pos   int
}

// New creates a new Lexer for the given input
func New(input []byte) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token, or false once the input is exhausted.
// String spans include both delimiting quotes.
func (l *Lexer) Next() (Token, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '{':
		return l.single(CurlyOpen), true
	case '}':
		return l.single(CurlyClose), true
	case '[':
		return l.single(BracketOpen), true
	case ']':
		return l.single(BracketClose), true
	case ':':
		return l.single(Colon), true
	case ',':
		return l.single(Comma), true
	case '"':
		return l.lexString(), true
	case 't':
		return l.lexKeyword("true", BooleanTrue), true
	case 'f':
		return l.lexKeyword("false", BooleanFalse), true
	case 'n':
		return l.lexKeyword("null", Null), true
	}

	if ch == '-' || isDigit(ch) {
		return l.lexNumber(), true
	}

	l.skipUntilDelimiter()
	return l.makeToken(Invalid, start), true
}

// All drains the lexer into a slice
func (l *Lexer) All() []Token {
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) single(kind Kind) Token {
	start := l.pos
	l.pos++
	return l.makeToken(kind, start)
}

func (l *Lexer) makeToken(kind Kind, start int) Token {
	return Token{Kind: kind, Span: Span{Start: start, End: l.pos}}
}

// lexString consumes a quoted string. An unterminated string is Invalid up to end of input.
func (l *Lexer) lexString() Token {
	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			return l.makeToken(String, start)
		default:
			l.pos++
		}
	}

	l.pos = len(l.input)
	return l.makeToken(Invalid, start)
}

func (l *Lexer) lexKeyword(word string, kind Kind) Token {
	start := l.pos
	end := start + len(word)
	if end <= len(l.input) && string(l.input[start:end]) == word &&
		(end == len(l.input) || isDelimiter(l.input[end])) {
		l.pos = end
		return l.makeToken(kind, start)
	}

	l.skipUntilDelimiter()
	return l.makeToken(Invalid, start)
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for l.pos < len(l.input) && isNumberByte(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && !isDelimiter(l.input[l.pos]) {
		l.skipUntilDelimiter()
		return l.makeToken(Invalid, start)
	}
	return l.makeToken(Number, start)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isWhitespace(l.input[l.pos]) {
		l.pos++
	}
}

// skipUntilDelimiter always consumes at least one byte
func (l *Lexer) skipUntilDelimiter() {
	l.pos++
	for l.pos < len(l.input) && !isDelimiter(l.input[l.pos]) {
		l.pos++
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberByte(ch byte) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case '{', '}', '[', ']', ':', ',', '"':
		return true
	}
	return isWhitespace(ch)
}
