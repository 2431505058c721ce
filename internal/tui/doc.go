/*
Package tui implements the interactive fetch screen with bubbletea.

# Layout

	[GET ] https://example.com/api
	200 OK  ████████░░░░  120ms  2.31KB
	╭──────────────────────────────╮
	│ { "highlighted": "body" }    │
	╰──────────────────────────────╯
	enter fetch  tab method  ...

# Fetch flow

Pressing the fetch key clears the status, body and notice, calls
fetch.Coordinator.Begin and returns two commands: the worker, which runs
fetch.Perform on its own goroutine and reports a fetchDoneMsg, and a
tea.Tick that reports progressTickMsg every poll interval while the fetch
is in flight. Results are matched against the coordinator generation so a
newer fetch always wins. Accepted outcomes go through inspect.Classifier;
a notice in the resulting display blocks all input until it is dismissed.

Every accepted outcome is written to the SQLite history when enabled, and
the request is recorded in the session file.
*/
package tui
