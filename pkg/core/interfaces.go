package core

import "log"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdLogger adapts the standard library logger to the Logger interface
type StdLogger struct{}

// Printf logs through the standard log package
func (StdLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NopLogger discards all log output
type NopLogger struct{}

// Printf discards the message
func (NopLogger) Printf(format string, args ...interface{}) {}
