// Package logging assembles structured slog loggers and formatting helpers used
// by the greenline CLI and the contact relay.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so request handlers can tag log lines with
// request IDs and operation names. Logs go to stderr by default so command
// output on stdout stays machine readable.
package logging
