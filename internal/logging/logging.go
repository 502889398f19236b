// Package logging builds the application logger.
package logging

import (
	"github.com/retroenv/retrogolib/log"
)

// New creates a logger. debug enables trace output, quiet limits output to errors.
func New(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Discard returns a logger that drops everything, for tests and embedding.
func Discard() *log.Logger {
	return log.NewNop()
}
