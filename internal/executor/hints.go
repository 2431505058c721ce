package executor

import (
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// Hint texts shown under a transport failure notice
const (
	HintDNS          = "DNS lookup failed - check the hostname and your network"
	HintRefused      = "Connection refused - is the server running on that port?"
	HintReset        = "Connection reset by the server"
	HintUnreachable  = "Network unreachable - check your connection and firewall"
	HintHostDown     = "Host unreachable - the server may be offline"
	HintProxy        = "Proxy connection failed - check HTTPS_PROXY / HTTP_PROXY"
	HintRedirects    = "Too many redirects"
	HintBadURL       = "Invalid URL - check the address and scheme"
	HintEOF          = "Connection closed before a response was received"
	HintTimeout      = "The server took too long to respond"
	HintProtocol     = "The server did not answer with valid HTTP"
	HintTLSUntrusted = "TLS certificate is not trusted (unknown authority)"
	HintTLSExpired   = "TLS certificate has expired or is not yet valid"
	HintTLSHostname  = "TLS certificate does not match the requested hostname"
	HintTLSHandshake = "TLS handshake failed - protocol or cipher mismatch"
	HintTLSGeneric   = "TLS error"
)

type hintRule struct {
	needles []string
	hint    string
}

// Order matters: proxy failures usually also mention "connection refused",
// and TLS is checked before the generic EOF/timeout rules.
var messageRules = []hintRule{
	{[]string{"proxyconnect", "proxy"}, HintProxy},
	{[]string{"no such host", "dial tcp: lookup", "server misbehaving"}, HintDNS},
	{[]string{"connection refused"}, HintRefused},
	{[]string{"connection reset"}, HintReset},
	{[]string{"network is unreachable"}, HintUnreachable},
	{[]string{"no route to host"}, HintHostDown},
	{[]string{"x509", "tls", "certificate"}, ""}, // resolved by tlsHint
	{[]string{"stopped after"}, HintRedirects},
	{[]string{"unsupported protocol scheme", "invalid url", "missing protocol scheme", "no host in request url"}, HintBadURL},
	{[]string{"eof"}, HintEOF},
	{[]string{"timeout", "timed out", "deadline exceeded"}, HintTimeout},
	{[]string{"malformed http"}, HintProtocol},
}

// CategorizeError turns a transport error into a short user-facing hint.
// It returns "" for nil or unrecognized errors.
func CategorizeError(err error) string {
	if err == nil {
		return ""
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return HintTimeout
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return HintTLSUntrusted
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return HintTLSHostname
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		if invalidCert.Reason == x509.Expired {
			return HintTLSExpired
		}
		return HintTLSGeneric
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return HintTimeout
		}
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.ECONNREFUSED:
				return HintRefused
			case syscall.ECONNRESET:
				return HintReset
			case syscall.ENETUNREACH:
				return HintUnreachable
			case syscall.EHOSTUNREACH:
				return HintHostDown
			}
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return HintDNS
	}

	return categorizeMessage(err.Error())
}

// categorizeMessage falls back to matching the error text
func categorizeMessage(msg string) string {
	lower := strings.ToLower(msg)
	for _, rule := range messageRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				if rule.hint == "" {
					return tlsHint(lower)
				}
				return rule.hint
			}
		}
	}
	return ""
}

func tlsHint(lower string) string {
	switch {
	case strings.Contains(lower, "unknown authority") || strings.Contains(lower, "not trusted"):
		return HintTLSUntrusted
	case strings.Contains(lower, "expired") || strings.Contains(lower, "not yet valid"):
		return HintTLSExpired
	case strings.Contains(lower, "is valid for") || strings.Contains(lower, "doesn't match"):
		return HintTLSHostname
	case strings.Contains(lower, "handshake"):
		return HintTLSHandshake
	}
	return HintTLSGeneric
}
