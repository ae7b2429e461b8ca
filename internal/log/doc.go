// Package log provides the logging setup for apodwall.
//
// It builds on log/slog and adds a fanout handler that duplicates every
// record to the console and to an append-only log file. The console level
// follows the --verbose flag; the file always records at debug level so a
// failed scheduled run can be diagnosed after the fact.
package log
