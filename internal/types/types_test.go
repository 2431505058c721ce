package types

import (
	"testing"
	"time"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"GET", MethodGet, false},
		{"get", MethodGet, false},
		{" post ", MethodPost, false},
		{"PUT", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMethodNext(t *testing.T) {
	if got := MethodGet.Next(); got != MethodPost {
		t.Errorf("GET.Next() = %s, want POST", got)
	}
	if got := MethodPost.Next(); got != MethodGet {
		t.Errorf("POST.Next() = %s, want GET", got)
	}
	if got := Method("PATCH").Next(); got != MethodGet {
		t.Errorf("unknown.Next() = %s, want GET", got)
	}
}

func TestNewHistoryEntry(t *testing.T) {
	req := FetchRequest{Method: MethodGet, URL: "https://example.com"}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := NewHistoryEntry(req, Success{Status: 200, Reason: "OK", Body: []byte(`{}`), Duration: 1500 * time.Millisecond}, at)
	if entry.Kind != KindSuccess || entry.Status != 200 || entry.ResponseSize != 2 || entry.DurationMs != 1500 {
		t.Errorf("unexpected success entry: %+v", entry)
	}

	entry = NewHistoryEntry(req, HTTPError{Code: 404, Reason: "Not Found"}, at)
	if entry.Kind != KindHTTPError || entry.Status != 404 || entry.Reason != "Not Found" {
		t.Errorf("unexpected http error entry: %+v", entry)
	}

	entry = NewHistoryEntry(req, TransportError{Message: "no such host"}, at)
	if entry.Kind != KindTransportError || entry.Error != "no such host" || entry.Status != 0 {
		t.Errorf("unexpected transport entry: %+v", entry)
	}
}

func TestStatusLine(t *testing.T) {
	if got := StatusLine(404, "Not Found"); got != "404 Not Found" {
		t.Errorf("StatusLine = %q", got)
	}
	if got := StatusLine(599, ""); got != "599" {
		t.Errorf("StatusLine = %q", got)
	}
}
