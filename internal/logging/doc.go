// Package logging assembles structured slog loggers and formatting helpers used
// across sentcluster.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so analysis code can tag log
// lines with run IDs and sources. Logs always go to stderr so stdout carries
// only command results; an optional log file receives a JSON copy. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
