package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/executor"
	"github.com/studiowebux/resters/internal/fetch"
	"github.com/studiowebux/resters/internal/filter"
	"github.com/studiowebux/resters/internal/highlight"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/inspect"
	"github.com/studiowebux/resters/internal/session"
	"github.com/studiowebux/resters/internal/types"
)

// NoticeError is returned when a fetch ends in a blocking notice
type NoticeError struct {
	Notice string
}

func (e *NoticeError) Error() string { return e.Notice }

// FetchOptions contains options for a headless fetch
type FetchOptions struct {
	Config       *config.Config
	Logger       zerolog.Logger
	Method       types.Method
	URL          string
	OutputFormat string // text, json, yaml
	History      *history.Manager // optional
	Session      *session.Manager // optional
	Doer         fetch.Doer       // nil performs real HTTP requests
	Stdout       io.Writer
	Stderr       io.Writer
}

// Report is the structured output of a fetch
type Report struct {
	Method     types.Method      `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Kind       types.OutcomeKind `json:"kind" yaml:"kind"`
	Status     string            `json:"status,omitempty" yaml:"status,omitempty"`
	Code       int               `json:"code,omitempty" yaml:"code,omitempty"`
	DurationMs int64             `json:"durationMs" yaml:"durationMs"`
	Body       string            `json:"body,omitempty" yaml:"body,omitempty"`
	Styles     string            `json:"styles,omitempty" yaml:"styles,omitempty"`
	Notice     string            `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Fetch performs one request through the same coordinator, worker wrapper
// and classifier the TUI uses, then prints the result
func Fetch(opts FetchOptions) error {
	if opts.Config == nil {
		return errors.New("cli: config is required")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Method == "" {
		method, err := types.ParseMethod(opts.Config.Fetch.Method)
		if err != nil {
			return fmt.Errorf("fetch.method: %w", err)
		}
		opts.Method = method
	}

	if err := ValidateFormat(opts.OutputFormat); err != nil {
		return err
	}
	if q := opts.Config.Fetch.Query; q != "" && !filter.IsValidJMESPath(q) {
		return fmt.Errorf("invalid query %q", q)
	}

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return errors.New("URL is required")
	}

	doer := opts.Doer
	if doer == nil {
		doer = executor.NewClient(opts.Config.Fetch.Scheme).Execute
	}

	cfg := opts.Config
	coordinator := fetch.NewCoordinator(fetch.NewCounter(cfg.UI.ProgressMin, cfg.UI.ProgressMax))
	ticket := coordinator.Begin(types.FetchRequest{Method: opts.Method, URL: url})

	opts.Logger.Info().
		Str("method", string(ticket.Request.Method)).
		Str("url", ticket.Request.URL).
		Msg("fetch started")

	outcome, _ := coordinator.Finish(ticket.Gen, fetch.Perform(doer, ticket.Request))

	opts.Logger.Info().Str("kind", string(outcome.Kind())).Msg("fetch finished")

	display := inspect.Classifier{Query: cfg.Fetch.Query, Log: opts.Logger}.Classify(outcome)

	if opts.History != nil && cfg.History.Enabled {
		if _, err := opts.History.Save(types.NewHistoryEntry(ticket.Request, outcome, time.Now())); err != nil {
			opts.Logger.Error().Err(err).Msg("failed to save history")
		} else if err := opts.History.Prune(cfg.History.Limit); err != nil {
			opts.Logger.Error().Err(err).Msg("failed to prune history")
		}
	}
	if opts.Session != nil {
		if err := opts.Session.Record(ticket.Request); err != nil {
			opts.Logger.Error().Err(err).Msg("failed to save session")
		}
	}

	report := Report{
		Method: ticket.Request.Method,
		URL:    ticket.Request.URL,
		Kind:   outcome.Kind(),
		Status: display.Status,
		Code:   display.Code,
		Body:   display.Body,
		Styles: display.Styles.String(),
		Notice: display.Notice,
	}
	report.DurationMs = display.Duration.Milliseconds()

	if err := writeReport(opts, report, display, cfg.UI.Theme); err != nil {
		return err
	}

	if display.HasNotice() {
		return &NoticeError{Notice: display.Notice}
	}
	return nil
}

func writeReport(opts FetchOptions, report Report, display inspect.Display, theme string) error {
	switch opts.OutputFormat {
	case "json":
		enc := json.NewEncoder(opts.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = opts.Stdout.Write(data)
		return err

	case "text", "":
		if display.Status != "" {
			fmt.Fprintf(opts.Stderr, "%s%s%s  %s\n",
				getStatusColor(display.Class),
				display.Status,
				colorReset,
				executor.FormatDuration(display.Duration))
		}
		if display.Body != "" {
			body := display.Body
			if len(display.Styles) > 0 {
				body = highlight.Render(display.Body, display.Styles, highlight.NewPalette(theme))
			}
			fmt.Fprintln(opts.Stdout, body)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", opts.OutputFormat)
	}
}

// ValidateFormat checks an output format name
func ValidateFormat(format string) error {
	switch format {
	case "", "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
}

// HistoryOptions contains options for listing history
type HistoryOptions struct {
	History      *history.Manager
	Limit        int
	OutputFormat string
	Stdout       io.Writer
}

// ListHistory prints recent fetches, newest first
func ListHistory(opts HistoryOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	entries, err := opts.History.Recent(opts.Limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}

	switch opts.OutputFormat {
	case "json":
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)

	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = opts.Stdout.Write(data)
		return err

	case "text", "":
		if len(entries) == 0 {
			fmt.Fprintln(opts.Stdout, "No history")
			return nil
		}
		for _, e := range entries {
			result := e.Error
			if e.Kind != types.KindTransportError {
				result = types.StatusLine(e.Status, e.Reason)
			}
			fmt.Fprintf(opts.Stdout, "%s  %-4s  %s  %s  %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Method,
				e.URL,
				result,
				executor.FormatDuration(time.Duration(e.DurationMs)*time.Millisecond))
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", opts.OutputFormat)
	}
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
)

func getStatusColor(class inspect.Class) string {
	switch class {
	case inspect.ClassEmphasis:
		return colorYellow
	case inspect.ClassError:
		return colorRed
	}
	return colorReset
}
