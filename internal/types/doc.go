/*
Package types defines core data structures used throughout resters.

# Overview

The types package provides shared type definitions for:
  - Fetch requests (method + URL)
  - Fetch outcomes (success, HTTP error, transport error)
  - History and session records

# Request Types

FetchRequest:
  - Created per user action (Enter key or CLI invocation)
  - Method is GET or POST, no headers, no body
  - URL is normalized by the executor before use

# Outcome Types

Outcome is a closed sum type. Exactly one of:

Success:
  - 2xx status with the raw response body

HTTPError:
  - Well-formed response with a non-2xx status
  - Code and reason phrase only, the body is discarded

TransportError:
  - No status line was received (DNS, connect, TLS, protocol)
  - Raw error text plus a user-facing hint

Consumers switch on the concrete type:

	switch o := outcome.(type) {
	case types.Success:
		render(o.Body)
	case types.HTTPError:
		status(o.Code, o.Reason)
	case types.TransportError:
		notice(o.Message)
	}

# Persistence

HistoryEntry:
  - One fetch outcome, flattened for the history database

Session:
  - Last used method and URL, restored on startup
*/
package types
