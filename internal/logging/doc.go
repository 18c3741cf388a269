// Package logging assembles the structured slog loggers used by reklamefix.
//
// It owns the console and JSON handlers, routes output to stderr plus an
// optional log file, and exposes context helpers so batch code can tag every
// line with the run identifier and the DOMS object being processed. Standard
// output is left alone; it carries the failure report.
package logging
