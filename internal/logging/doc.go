// Package logging builds the slog loggers used across ytbridge and provides
// small attribute helpers so call sites stay terse. Two output formats are
// supported: a human-oriented console format and line-delimited JSON.
package logging
