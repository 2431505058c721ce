package jsonlex

// Kind is the lexical category of a JSON token
type Kind int

const (
	CurlyOpen Kind = iota
	CurlyClose
	BracketOpen
	BracketClose
	Colon
	Comma
	String
	BooleanTrue
	BooleanFalse
	Null
	Number
	Invalid
)

var kindNames = [...]string{
	CurlyOpen:    "CurlyOpen",
	CurlyClose:   "CurlyClose",
	BracketOpen:  "BracketOpen",
	BracketClose: "BracketClose",
	Colon:        "Colon",
	Comma:        "Comma",
	String:       "String",
	BooleanTrue:  "BooleanTrue",
	BooleanFalse: "BooleanFalse",
	Null:         "Null",
	Number:       "Number",
	Invalid:      "Invalid",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Span is a half-open byte range [Start, End) into the lexed text
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a classified lexical unit of JSON text
type Token struct {
	Kind Kind
	Span Span
}
