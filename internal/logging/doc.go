// Package logging provides concrete implementations of the csvload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//   - BufferedLogger: Holds messages until Flush, for use behind a spinner
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
