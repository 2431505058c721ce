// Package inspect turns fetch outcomes into what the screen shows.
package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiowebux/resters/internal/filter"
	"github.com/studiowebux/resters/internal/highlight"
	"github.com/studiowebux/resters/internal/types"
)

// NoticeParseFailed is raised when a 2xx body is not JSON
const NoticeParseFailed = "Error parsing json"

// Class selects the status label color
type Class int

const (
	ClassNone Class = iota
	ClassEmphasis
	ClassError
)

func (c Class) String() string {
	switch c {
	case ClassEmphasis:
		return "emphasis"
	case ClassError:
		return "error"
	default:
		return "none"
	}
}

// StatusOK is the label shown for every successful JSON response
const StatusOK = "200 OK"

// Display is the complete screen state derived from one outcome.
// The zero value is the cleared state shown while a fetch is pending.
type Display struct {
	Status   string
	Code     int // Status code the server actually sent
	Class    Class
	Body     string
	Styles   highlight.Buffer
	Notice   string
	Duration time.Duration
	Size     int
}

// HasNotice reports whether a blocking notice should be shown
func (d Display) HasNotice() bool {
	return d.Notice != ""
}

// Classifier maps outcomes to displays
type Classifier struct {
	Query string // Optional JMESPath applied to JSON bodies
	Log   zerolog.Logger
}

// Classify builds the display for outcome
func (c Classifier) Classify(outcome types.Outcome) Display {
	switch o := outcome.(type) {
	case types.Success:
		return c.classifySuccess(o)
	case types.HTTPError:
		return Display{
			Status:   types.StatusLine(o.Code, o.Reason),
			Code:     o.Code,
			Class:    ClassError,
			Duration: o.Duration,
		}
	case types.TransportError:
		notice := o.Message
		if notice == "" {
			notice = "request failed"
		}
		if o.Hint != "" {
			notice += "\n\n" + o.Hint
		}
		return Display{Notice: notice}
	default:
		return Display{Notice: fmt.Sprintf("unexpected outcome %T", outcome)}
	}
}

func (c Classifier) classifySuccess(s types.Success) Display {
	body, err := Pretty(s.Body, c.Query)
	if err != nil {
		var queryErr *QueryError
		if errors.As(err, &queryErr) {
			c.Log.Warn().Err(queryErr.Err).Str("query", c.Query).Msg("query failed")
			return Display{Notice: "Query failed: " + queryErr.Err.Error()}
		}
		c.Log.Debug().Int("size", len(s.Body)).Msg("body is not json")
		return Display{Notice: NoticeParseFailed}
	}

	display := Display{
		Status:   StatusOK,
		Code:     s.Status,
		Class:    ClassEmphasis,
		Body:     string(body),
		Duration: s.Duration,
		Size:     len(s.Body),
	}

	styles, err := highlight.Highlight(body)
	if err != nil {
		c.Log.Error().Err(err).Msg("failed to build style buffer")
		display.Notice = "Highlighting failed: " + err.Error()
		return display
	}
	display.Styles = styles
	return display
}

// ErrNotJSON is returned by Pretty for bodies that fail to parse
var ErrNotJSON = errors.New("body is not valid json")

// QueryError wraps a JMESPath failure
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return "query failed: " + e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }

// Pretty validates body as JSON, applies the optional query and
// re-indents it with two spaces, keeping object key order
func Pretty(body []byte, query string) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, ErrNotJSON
	}

	if query != "" {
		selected, err := filter.Apply(trimmed, query)
		if err != nil {
			return nil, &QueryError{Err: err}
		}
		trimmed = selected
	}

	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "  "); err != nil {
		return nil, ErrNotJSON
	}
	return out.Bytes(), nil
}
