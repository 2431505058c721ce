package executor

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/resters/internal/types"
)

// DefaultScheme is prepended to URLs typed without one
const DefaultScheme = "https://"

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Client performs the blocking HTTP call for a fetch.
// No timeout is set: a request runs until the server answers or the process ends.
type Client struct {
	HTTP   *http.Client
	Scheme string
}

// NewClient builds a Client with library-default redirect handling
func NewClient(scheme string) *Client {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &Client{
		HTTP:   &http.Client{},
		Scheme: scheme,
	}
}

// NormalizeURL trims the input and prepends scheme when none is present
func NormalizeURL(raw, scheme string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || schemePattern.MatchString(trimmed) {
		return trimmed
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	return scheme + trimmed
}

// Execute performs one request and classifies the result into an Outcome.
// It never returns an error: every failure is a TransportError or HTTPError.
func (c *Client) Execute(req types.FetchRequest) types.Outcome {
	startTime := time.Now()

	httpReq, err := http.NewRequest(string(req.Method), NormalizeURL(req.URL, c.Scheme), nil)
	if err != nil {
		return transportError(err)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	reason := ReasonPhrase(resp.StatusCode, resp.Status)

	if !IsSuccessStatus(resp.StatusCode) {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return types.HTTPError{
			Code:     resp.StatusCode,
			Reason:   reason,
			Duration: time.Since(startTime),
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("failed to read response body: %w", err))
	}

	return types.Success{
		Status:   resp.StatusCode,
		Reason:   reason,
		Body:     bodyBytes,
		Duration: time.Since(startTime),
	}
}

func transportError(err error) types.TransportError {
	return types.TransportError{
		Message: err.Error(),
		Hint:    CategorizeError(err),
	}
}

// ReasonPhrase extracts the reason from a status line such as "404 Not Found",
// falling back to the standard text for the code
func ReasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		reason = http.StatusText(code)
	}
	return reason
}

// FormatDuration formats a duration to human-readable string
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
