// Package log provides logging functionality with automatic truncation
// of oversized attribute values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of attribute values lifted from input documents
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why truncation
//
// Log attributes routinely carry fragments of the JSON document being
// processed: section names, example values, flattened records. An example
// value can be arbitrarily large, and a single debug line carrying a whole
// document fragment makes the surrounding output unreadable. The
// TruncateHandler caps every string attribute at a fixed length before it
// reaches the underlying handler, so log lines stay scannable no matter
// what the input document contains.
//
// # Usage
//
//	// Create a logger (verbose=true enables debug output)
//	logger := log.NewLogger(os.Stderr, true)
//
//	// Use as a standard slog.Logger
//	logger.Debug("section flattened",
//	    "section", "user",
//	    "example", exampleValue, // capped at DefaultMaxValueLength
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
