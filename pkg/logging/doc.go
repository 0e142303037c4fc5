// Package logging provides structured logging utilities for unitscope.
//
// It wraps the standard library slog package with project defaults:
// structured JSON output to stderr, module/version context on every record,
// environment-based level configuration (LOG_LEVEL), and source location
// tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("unitscope", version)
//
//	    slog.Info("probing user manager", "uid", uid)
//	    slog.Warn("failed to list socket units", "error", err)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("unitscope", version, "debug")
//
// Supported levels (case-insensitive): DEBUG, INFO (default), WARN/WARNING,
// ERROR. If LOG_LEVEL is not set and no explicit level is given, INFO is used.
package logging
