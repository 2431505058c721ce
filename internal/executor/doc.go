/*
Package executor performs the blocking HTTP call behind a fetch.

# Overview

Execute sends one GET or POST with no request body and folds every result
into a types.Outcome:

  - 2xx responses become types.Success carrying the full body
  - other status codes become types.HTTPError; the body is drained and dropped
  - anything that prevented a response becomes types.TransportError

Transport errors carry an optional Hint produced by CategorizeError, which
recognizes DNS, connection, TLS and timeout failures.

# URLs

NormalizeURL trims surrounding whitespace and prepends the client Scheme
when the input has none, so "example.com/api" is requested as
"https://example.com/api" by default.
*/
package executor
