package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestCategorizeMessage(t *testing.T) {
	tests := []struct {
		name   string
		errStr string
		want   string
	}{
		{"empty", "", ""},
		{"dns", "dial tcp: lookup nonexistent.example.com: no such host", HintDNS},
		{"refused", "dial tcp 127.0.0.1:9999: connect: connection refused", HintRefused},
		{"reset", "read tcp 127.0.0.1:8080->127.0.0.1:54321: read: connection reset by peer", HintReset},
		{"unreachable", "dial tcp: network is unreachable", HintUnreachable},
		{"no route", "dial tcp 10.0.0.1:80: connect: no route to host", HintHostDown},
		{"proxy before refused", "proxyconnect tcp: dial tcp 127.0.0.1:8080: connect: connection refused", HintProxy},
		{"unknown authority", "x509: certificate signed by unknown authority", HintTLSUntrusted},
		{"expired", "x509: certificate has expired or is not yet valid", HintTLSExpired},
		{"hostname", "x509: certificate is valid for example.com, not example.org", HintTLSHostname},
		{"handshake", "remote error: tls: handshake failure", HintTLSHandshake},
		{"generic tls", "tls: some other error", HintTLSGeneric},
		{"redirects", `Get "http://example.com": stopped after 10 redirects`, HintRedirects},
		{"bad scheme", `Get "ftp2://x": unsupported protocol scheme "ftp2"`, HintBadURL},
		{"eof", "unexpected EOF", HintEOF},
		{"timeout", "i/o timeout", HintTimeout},
		{"malformed", "net/http: HTTP/1.x transport connection broken: malformed HTTP response", HintProtocol},
		{"unknown", "something went wrong", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeMessage(tt.errStr); got != tt.want {
				t.Errorf("categorizeMessage(%q) = %q, want %q", tt.errStr, got, tt.want)
			}
		})
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			name: "url error timeout",
			err:  &url.Error{Op: "Get", URL: "http://example.com", Err: context.DeadlineExceeded},
			want: HintTimeout,
		},
		{
			name: "op error refused",
			err:  &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			want: HintRefused,
		},
		{
			name: "op error reset",
			err:  &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET},
			want: HintReset,
		},
		{
			name: "op error unreachable",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ENETUNREACH},
			want: HintUnreachable,
		},
		{
			name: "dns error",
			err:  fmt.Errorf("wrapped: %w", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}),
			want: HintDNS,
		},
		{
			name: "plain error falls back to text",
			err:  errors.New("dial tcp: lookup nonexistent.example.com: no such host"),
			want: HintDNS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.err); got != tt.want {
				t.Errorf("CategorizeError() = %q, want %q", got, tt.want)
			}
		})
	}
}
