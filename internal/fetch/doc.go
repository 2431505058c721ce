// Package fetch coordinates background fetches with the UI loop.
//
// The loop calls Begin, hands the Ticket to a worker running Perform, calls
// Tick on every poll interval, and passes the worker's outcome to Finish.
// Finish rejects outcomes from superseded generations and resets progress.
package fetch
