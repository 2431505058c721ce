package types

import (
	"fmt"
	"strings"
	"time"
)

// Method is the HTTP method of a fetch
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Methods lists the supported methods in display order
var Methods = []Method{MethodGet, MethodPost}

// ParseMethod converts user input to a Method
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodGet:
		return MethodGet, nil
	case MethodPost:
		return MethodPost, nil
	}
	return "", fmt.Errorf("unsupported method %q (expected GET or POST)", s)
}

// Next returns the method following m in Methods, wrapping around
func (m Method) Next() Method {
	for i, method := range Methods {
		if method == m {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return Methods[0]
}

// FetchRequest is a single user-initiated request
type FetchRequest struct {
	Method Method `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
}

// OutcomeKind names an Outcome variant for storage and logs
type OutcomeKind string

const (
	KindSuccess        OutcomeKind = "success"
	KindHTTPError      OutcomeKind = "http_error"
	KindTransportError OutcomeKind = "transport_error"
)

// Outcome is the result of one fetch attempt
type Outcome interface {
	Kind() OutcomeKind
	isOutcome()
}

// Success is a 2xx response
type Success struct {
	Status   int
	Reason   string
	Body     []byte
	Duration time.Duration
}

// HTTPError is a response with a non-2xx status
type HTTPError struct {
	Code     int
	Reason   string
	Duration time.Duration
}

// TransportError is a failure before any status line existed
type TransportError struct {
	Message string
	Hint    string // Categorized, user-facing explanation (may be empty)
}

func (Success) Kind() OutcomeKind        { return KindSuccess }
func (HTTPError) Kind() OutcomeKind      { return KindHTTPError }
func (TransportError) Kind() OutcomeKind { return KindTransportError }

func (Success) isOutcome()        {}
func (HTTPError) isOutcome()      {}
func (TransportError) isOutcome() {}

// StatusLine formats a code and reason the way status labels show them
func StatusLine(code int, reason string) string {
	if reason == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%d %s", code, reason)
}

// HistoryEntry represents a saved fetch outcome
type HistoryEntry struct {
	ID           int64       `json:"id" yaml:"id"`
	Timestamp    time.Time   `json:"timestamp" yaml:"timestamp"`
	Method       Method      `json:"method" yaml:"method"`
	URL          string      `json:"url" yaml:"url"`
	Kind         OutcomeKind `json:"kind" yaml:"kind"`
	Status       int         `json:"status,omitempty" yaml:"status,omitempty"`
	Reason       string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error        string      `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs   int64       `json:"durationMs" yaml:"durationMs"`
	ResponseSize int         `json:"responseSize,omitempty" yaml:"responseSize,omitempty"`
}

// NewHistoryEntry flattens an outcome into a history record
func NewHistoryEntry(req FetchRequest, outcome Outcome, at time.Time) HistoryEntry {
	entry := HistoryEntry{
		Timestamp: at,
		Method:    req.Method,
		URL:       req.URL,
		Kind:      outcome.Kind(),
	}
	switch o := outcome.(type) {
	case Success:
		entry.Status = o.Status
		entry.Reason = o.Reason
		entry.DurationMs = o.Duration.Milliseconds()
		entry.ResponseSize = len(o.Body)
	case HTTPError:
		entry.Status = o.Code
		entry.Reason = o.Reason
		entry.DurationMs = o.Duration.Milliseconds()
	case TransportError:
		entry.Error = o.Message
	}
	return entry
}

// Session represents state restored between runs
type Session struct {
	Method     Method   `json:"method,omitempty"`
	URL        string   `json:"url,omitempty"`
	RecentURLs []string `json:"recentUrls,omitempty"` // Most recent first
}
