// Package logger provides logging functionality for the gitsplit
// application.
//
// This package implements a dual-channel logging system that separates
// user-facing messages from optional debug logs. It is responsible for
// all console feedback shown during an edit session as well as the
// structured log file written when debug mode is enabled.
//
// # Core Components
//
// - Logger: Interface defining the logging operations
// - DefaultLogger: Standard implementation with console and file output
//
// # Features
//
// - User-friendly console messages with emoji prefixes
// - Structured debug logging to a file via log/slog
// - Passthrough of raw git output without reformatting
// - Quiet mode that suppresses informational messages
// - Thread-safe logging operations
package logger
