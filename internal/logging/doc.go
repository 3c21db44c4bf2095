// Package logging provides concrete implementations of the migembed.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted messages to stderr, with colored level
//     prefixes when stderr is a terminal and NO_COLOR is unset
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
